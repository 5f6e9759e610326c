package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/app/standings"
	"github.com/preston-bernstein/vmhl-standings/internal/config"
	"github.com/preston-bernstein/vmhl-standings/internal/console"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
	"github.com/preston-bernstein/vmhl-standings/internal/remote"
	"github.com/preston-bernstein/vmhl-standings/internal/session"
	"github.com/preston-bernstein/vmhl-standings/internal/store"
)

const (
	appVersion      = "dev"
	metricsShutdown = 5 * time.Second
)

var metricsSetup = metrics.Setup

func main() {
	if os.Getenv("SKIP_CONSOLE_RUN") == "1" {
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
		Service: "vmhl-console",
		Version: appVersion,
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, logger); err != nil && ctx.Err() == nil {
		logging.Error(logger, "console exited", err)
		os.Exit(1)
	}
}

// run wires the client, cache, session and controller and drives the console.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	admin, err := session.NewAdmin(cfg.Console.AdminPassword)
	if err != nil {
		return err
	}
	recorder, closeMetrics := telemetry(ctx, cfg, logger)
	defer closeMetrics()

	client := remote.NewClient(remote.Config{
		BaseURL:     cfg.Console.RemoteBaseURL,
		AdminSecret: cfg.Console.AdminSecret,
		Timeout:     cfg.Console.Timeout,
		Logger:      logger,
		Metrics:     recorder,
	})
	prompter := console.NewPrompter(in, out)
	ctrl := standings.NewController(standings.Options{
		Remote:     client,
		Cache:      store.NewMemoryStore(),
		Session:    admin,
		Notifier:   prompter,
		Confirmer:  prompter,
		Logger:     logger,
		AtomicSwap: cfg.Console.AtomicSwap,
	})

	logging.Info(logger, "console starting", slog.String("remote", client.BaseURL()))
	return console.New(ctrl, prompter, logger).Run(ctx)
}

// telemetry builds the remote-call recorder on the shared meter provider.
// OTLP export follows the metrics config; the Prometheus handler is only
// served when the console has its own metrics port.
func telemetry(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, func()) {
	rec, handler, shutdown, err := metricsSetup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), func() {}
	}

	var srv *http.Server
	if handler != nil && cfg.Console.MetricsPort != "" {
		srv = &http.Server{
			Addr:              ":" + cfg.Console.MetricsPort,
			Handler:           handler,
			ReadHeaderTimeout: metricsShutdown,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Warn(logger, "console metrics server failed", "error", err)
			}
		}()
	}

	return rec, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdown)
		defer cancel()
		if srv != nil {
			_ = srv.Shutdown(shutdownCtx)
		}
		if shutdown != nil {
			if err := shutdown(shutdownCtx); err != nil {
				logging.Warn(logger, "metrics shutdown failed", "error", err)
			}
		}
	}
}
