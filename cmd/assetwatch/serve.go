package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AssetWatch/internal/session"
	"AssetWatch/internal/web"

	"github.com/google/subcommands"
	"github.com/zeromicro/go-zero/core/logx"
)

type serveCmd struct {
	addr string
	mock bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the asset dashboard" }
func (*serveCmd) Usage() string {
	return `assetwatch serve [-addr <host:port>] [-mock]

  Serves the dashboard. Each browser session keeps its own list of tracked
  assets until it goes idle.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides server.addr.")
	f.BoolVar(&c.mock, "mock", false, "Serve generated data instead of calling the providers.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer logx.Close()
	if c.addr != "" {
		cfg.Server.Addr = c.addr
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	col, err := newCollector(cfg, rec, c.mock)
	if err != nil {
		logx.Error(err)
		return subcommands.ExitFailure
	}

	sessions := session.NewManager(cfg.Session.IdleTTL)
	if err := sessions.RegisterSweep(cfg.Session.SweepCron); err != nil {
		logx.Error(err)
		return subcommands.ExitFailure
	}
	sessions.Start()
	defer sessions.Stop()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewHTTPServer(cfg.Server.Addr, web.NewServer(sessions, col).Handler())
	errCh := make(chan error, 1)
	go func() {
		logx.Infof("dashboard listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logx.Errorf("http server: %v", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		logx.Info("shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Errorf("http shutdown: %v", err)
	}
	logx.Info("AssetWatch stopped")
	return subcommands.ExitSuccess
}
