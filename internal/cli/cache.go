package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the comparison cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePurgeCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// fileCache opens the configured file cache. Other backends manage their
// own expiry and are not touched by these commands.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	if b := c.Config.Cache.Backend; b != cache.BackendFile {
		return nil, fmt.Errorf("cache backend is %q; only the file cache is managed locally", b)
	}
	opts, err := c.Config.CacheOptions()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(opts.Dir)
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess("Cleared cache")
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePurgeCommand creates the "cache purge" subcommand.
func (c *CLI) cachePurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired and unreadable cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			n, err := fc.Purge(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Nothing to purge")
				return nil
			}
			printSuccess("Purged %d cached entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.Config.CacheOptions()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if opts.Dir == "" {
				return fmt.Errorf("cache backend %q has no directory", opts.Backend)
			}
			fmt.Fprintln(stdout, opts.Dir)
			return nil
		},
	}
}
