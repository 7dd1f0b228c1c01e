package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/internal/server"
	"github.com/matzehuels/gatesketch/pkg/observability"
	"github.com/matzehuels/gatesketch/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		mongoDB  string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Renders are recorded in MongoDB when a URI is configured (server.mongo_uri or
--mongo-uri) and in memory otherwise. Layouts and artifacts use the same cache
as the other commands.

  GET  /healthz
  GET  /v1/render?expr=ab%2Bc&format=svg
  POST /v1/render   {"expression": "ab+c", "format": "png"}
  GET  /v1/layout?expr=ab%2Bc
  GET  /v1/renders/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("mongo-uri") {
				cfg.MongoURI = mongoURI
			}
			if cmd.Flags().Changed("mongo-db") {
				cfg.MongoDB = mongoDB
			}
			return c.runServe(cmd.Context(), cfg.Addr, cfg.MongoURI, cfg.MongoDB, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the render history (default: in memory)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.openStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetHTTPHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	srv := server.New(runner, st, c.Logger, c.baseOptions())
	err = srv.ListenAndServe(ctx, addr)
	if err == nil {
		return ctx.Err()
	}
	return err
}

// openStore returns a MongoDB store for a non-empty uri and an in-memory
// store otherwise.
func (c *CLI) openStore(ctx context.Context, uri, db string) (store.Store, error) {
	if uri == "" {
		c.Logger.Info("render history in memory", "max", c.cfg.Server.History)
		return store.NewMemoryStore(store.WithMaxRecords(c.cfg.Server.History)), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	st, err := store.NewMongoStore(connectCtx, uri, db)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("render history in mongodb", "db", db)
	return st, nil
}
