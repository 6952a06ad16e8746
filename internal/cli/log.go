// Package cli implements the hierpart command-line interface.
//
// This package provides commands for comparing hierarchical partitions,
// inspecting and converting tree files, rendering them with Graphviz,
// browsing them interactively and serving comparisons over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - compare: Normalized hierarchical mutual information of two trees
//   - show: Print a tree
//   - stats: Depth and branching statistics
//   - convert: Translate between JSON, YAML and the paths format
//   - render: Generate DOT, SVG, PDF or PNG drawings
//   - explore: Browse a tree in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the comparison cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierpart/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 2 trees (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks implements the observability hooks by writing debug lines.
type logHooks struct {
	observability.NoopCompareHooks
	logger *log.Logger
}

func (h logHooks) OnLoadComplete(_ context.Context, path string, modules int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "error", err)
		return
	}
	h.logger.Debug("loaded", "path", path, "modules", modules, "duration", dur.Round(time.Microsecond))
}

func (h logHooks) OnCompareStart(_ context.Context, universe, modulesA, modulesB int) {
	h.logger.Debug("compare start", "universe", universe, "modules_a", modulesA, "modules_b", modulesB)
}

func (h logHooks) OnCompareComplete(_ context.Context, normalized float64, cached bool, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compare failed", "error", err)
		return
	}
	h.logger.Debug("compare done", "normalized", normalized, "cached", cached, "duration", dur.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
