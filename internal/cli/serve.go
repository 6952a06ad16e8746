package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		Long: `Run the comparison API.

  GET  /healthz      liveness and build information
  POST /v1/compare   {"a": tree, "b": tree, "mean": "max"}
  POST /v1/show      tree

Trees use the JSON document format. The server stops gracefully on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Addr:         addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				ReadTimeout:  c.Config.Server.ReadTimeout.Duration,
				Mean:         c.Config.Compare.Mean,
				Logger:       c.Logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
