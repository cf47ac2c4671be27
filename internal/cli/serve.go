package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tompkins/internal/server"
	"github.com/matzehuels/tompkins/pkg/cache"
	"github.com/matzehuels/tompkins/pkg/observability"
	"github.com/matzehuels/tompkins/pkg/pipeline"
)

const redisKeyPrefix = appName + ":"

// serveCommand creates the serve command, which renders triangles over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered triangles over HTTP",
		Long: `Serve starts an HTTP server:

  GET /healthz
  GET /triangle?k=4&n=8            JSON
  GET /triangle.png?k=4&n=8        PNG (also .svg, .dot, .json)

Query parameters: k, n, highlight, diagonal, diagonals ("j:color,...").
With --redis, rendered artifacts are shared through Redis instead of the
local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				c.Config.Server.Redis = redis
			}

			var (
				store cache.Cache
				err   error
			)
			if c.Config.Server.Redis != "" && !noCache {
				store, err = cache.NewRedisCache(ctx, c.Config.Server.Redis, redisKeyPrefix)
				if err == nil {
					c.Logger.Info("using redis cache", "addr", c.Config.Server.Redis)
				}
			} else {
				store, err = c.newCache(noCache)
			}
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := server.New(pipeline.NewRunner(store, c.Logger), c.Config, c.Logger)
			if err != nil {
				return err
			}
			srv.Stats().Register()
			defer observability.Reset()
			return srv.ListenAndServe(ctx, c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address or URL for the shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
