package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/vmhl-standings/internal/config"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, config.Usage())
		os.Exit(2)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "vmhl-store",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg, logger); err != nil {
		logging.Error(logger, "server startup failed", err)
		os.Exit(1)
	}
}

// run builds the store service and blocks until ctx is cancelled.
func run(ctx context.Context, stop context.CancelFunc, cfg config.Config, logger *slog.Logger) error {
	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logging.Info(logger, "store starting",
		slog.String("port", cfg.Server.Port),
		slog.Bool("database", cfg.Server.UsesDatabase()),
	)
	srv.Run(ctx, stop)
	return nil
}
