// Package pipeline runs hierarchy comparisons for the CLI and the HTTP API.
//
// # Overview
//
// A comparison goes through four steps:
//
//  1. Load: read both trees from files or request bodies
//  2. Fingerprint: hash each tree's structure, independent of module
//     identifiers and sibling order
//  3. Lookup: try the cache for the comparison, then for each tree's
//     self-information
//  4. Compare: compute what is missing with [hmi] and store it
//
// Cache failures are logged and never fail a comparison.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.CompareFiles(ctx, "x.json", "y.json", pipeline.Options{Mean: "max"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Score.Normalized, res.CacheHit)
//
// [hmi]: github.com/matzehuels/hierpart/pkg/hmi
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierpart/pkg/hmi"
)

const (
	// DefaultMean is the normalization used when Options.Mean is empty.
	DefaultMean = "max"

	// DefaultTTL is how long comparison results stay cached.
	DefaultTTL = 30 * 24 * time.Hour
)

// Options configures one comparison.
type Options struct {
	// Mean is "max" or "geometric".
	Mean string `json:"mean,omitempty"`
	// Refresh skips cache lookups; results are still stored.
	Refresh bool `json:"refresh,omitempty"`
	// TTL overrides DefaultTTL.
	TTL time.Duration `json:"-"`
	// Trace logs every compared level pair at debug level.
	Trace bool `json:"-"`
	// Logger overrides the runner's logger for this comparison.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and rejects unknown settings.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Mean == "" {
		o.Mean = DefaultMean
	}
	mean, err := hmi.ParseMean(o.Mean)
	if err != nil {
		return err
	}
	o.Mean = mean.String()
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

func (o Options) mean() hmi.Mean {
	m, _ := hmi.ParseMean(o.Mean)
	return m
}

// Result is the outcome of one comparison.
type Result struct {
	// ID identifies this result in logs and API responses.
	ID    string    `json:"id"`
	Score hmi.Score `json:"score"`
	Mean  string    `json:"mean"`
	// FingerprintA and FingerprintB are the structural hashes of the inputs.
	FingerprintA string        `json:"fingerprint_a"`
	FingerprintB string        `json:"fingerprint_b"`
	CacheHit     bool          `json:"cached"`
	Duration     time.Duration `json:"duration_ns"`
}
