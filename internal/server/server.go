package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/vmhl-standings/internal/config"
	httpserver "github.com/preston-bernstein/vmhl-standings/internal/http"
	"github.com/preston-bernstein/vmhl-standings/internal/http/handlers"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
	"github.com/preston-bernstein/vmhl-standings/internal/teamstore"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	teams         *teamstore.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closeStorage  func() error
}

// New constructs a server backed by Postgres when a DSN is configured and by
// the in-memory repository otherwise.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	store, err := buildStorage(ctx, cfg.Server, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	svc := teamstore.NewService(store.trm, store.repo, recorder, logger)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		teams:         svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closeStorage:  store.close,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *teamstore.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		teams:      svc,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, svc *teamstore.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	router := httpserver.NewRouter(httpserver.RouterDeps{
		Teams:       handlers.NewTeamsHandler(svc, logger),
		Probes:      handlers.NewHandler(svc.Ready, logger),
		AdminSecret: cfg.Server.AdminSecret,
		Logger:      logger,
		Metrics:     recorder,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      http.MaxBytesHandler(router, requestBodyLimit),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Storage closes last so in-flight requests drain first.
	if s.closeStorage != nil {
		if err := s.closeStorage(); err != nil {
			logging.Warn(s.logger, "storage close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
