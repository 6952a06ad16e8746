package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/buildinfo"
	"github.com/matzehuels/hierpart/pkg/cache"
	"github.com/matzehuels/hierpart/pkg/config"
	"github.com/matzehuels/hierpart/pkg/observability"
	"github.com/matzehuels/hierpart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "hierpart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose forces debug logging and registers logging observability hooks,
// regardless of the configured level.
func (c *CLI) SetVerbose(v bool) {
	c.verbose = v
	if v {
		c.SetLogLevel(LogDebug)
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hierpart compares hierarchical partitions",
		Long: `Hierpart builds, inspects and compares hierarchical partitions (trees of nested
sets over a shared universe of elements) using hierarchical mutual information.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hierpart/config.toml)")

	// Register all subcommands
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun loads the configuration and attaches the logger to the command
// context.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if !c.verbose {
		lvl, _ := cfg.LogLevel()
		c.SetLogLevel(lvl)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), c.Config.Keyer(), c.Logger)
}

// newCache opens the configured cache backend. An unreachable backend
// degrades to no caching, since the cache never decides a result.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts, err := c.Config.CacheOptions()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", opts.Backend, "error", err)
		return cache.NewNullCache()
	}
	return cc
}

// pipelineOptions merges config defaults with per-command settings.
func (c *CLI) pipelineOptions(mean string) pipeline.Options {
	if mean == "" {
		mean = c.Config.Compare.Mean
	}
	return pipeline.Options{
		Mean: mean,
		TTL:  c.Config.Cache.TTL.Duration,
	}
}

// registerLogHooks routes observability events to the logger at debug level.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetCompareHooks(h)
	observability.SetCacheHooks(h)
}

// stdout is where commands print results. Tests replace it.
var stdout io.Writer = os.Stdout
