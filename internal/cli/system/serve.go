package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/server"
)

// ServeCmd runs the reference backend in the foreground.
type ServeCmd struct {
	Addr      string `help:"Listen address. Defaults to INTERVIEWDESK_SERVER_ADDR."`
	DB        string `name:"db" help:"SQLite path or PostgreSQL connection string. Defaults to the keyring, then the config directory."`
	NoMetrics bool   `help:"Do not expose /metrics."`
	NoBackup  bool   `help:"Skip the automatic backup of a sqlite database on startup."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if !c.NoBackup {
		autoBackup(ctx, c.DB)
	}
	store, err := ctx.OpenStore(c.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(store, server.Options{Metrics: ctx.Config.Server.Metrics && !c.NoMetrics})
	ctx.Printf("Serving interviews from %s on http://%s/api\n", store.Describe(), addr)
	return serve(runCtx, srv, addr)
}

// serve is swapped in tests.
var serve = func(ctx context.Context, srv *server.Server, addr string) error {
	return srv.Run(ctx, addr)
}
