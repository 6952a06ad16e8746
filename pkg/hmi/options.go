package hmi

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
)

// Mean selects how [Normalized] combines the two self-informations into the
// denominator.
type Mean int

const (
	// MeanMax divides by max(HMI(A,A), HMI(B,B)).
	MeanMax Mean = iota
	// MeanGeometric divides by sqrt(HMI(A,A)·HMI(B,B)).
	MeanGeometric
)

// String returns the configuration name of the mean.
func (m Mean) String() string {
	switch m {
	case MeanMax:
		return "max"
	case MeanGeometric:
		return "geometric"
	}
	return fmt.Sprintf("Mean(%d)", int(m))
}

// ParseMean parses "max" or "geometric" (case-insensitive). The empty string
// selects [MeanMax].
func ParseMean(s string) (Mean, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max":
		return MeanMax, nil
	case "geometric", "geo", "sqrt":
		return MeanGeometric, nil
	}
	return MeanMax, herrors.New(herrors.ErrCodeInvalidInput, "unknown mean %q (want max or geometric)", s)
}

// Option configures a comparison.
type Option func(*config)

type config struct {
	logger *log.Logger
	mean   Mean
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithLogger traces every compared level at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMean sets the normalization denominator used by [Normalized].
func WithMean(m Mean) Option {
	return func(c *config) { c.mean = m }
}
