package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/internal/server"
	"github.com/matzehuels/netweave/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored circuits over HTTP",
		Long: `Start the HTTP API. Circuits are kept in MongoDB when store.mongo_uri is
configured and in memory otherwise. Rendered netlists and diagrams go
through the configured cache (Redis, file or none).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			var st store.Store
			if cfg.Store.MongoURI != "" {
				st, err = store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
				if err != nil {
					return err
				}
				c.Logger.Info("using mongodb store", "database", cfg.Store.Database)
			} else {
				st = store.NewMemoryStore()
				printWarning(cmd.ErrOrStderr(), "No store.mongo_uri configured; circuits are kept in memory")
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := st.Close(closeCtx); err != nil {
					c.Logger.Warn("close store", "err", err)
				}
			}()

			artifacts, err := c.newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			srv := server.New(server.Options{
				Store:          st,
				Cache:          artifacts,
				Keyer:          newKeyer(),
				Logger:         c.Logger,
				TTL:            cfg.Cache.TTL,
				DefaultDialect: cfg.Dialect,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
