package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// ReadyFunc reports whether the backing store can serve traffic.
type ReadyFunc func(ctx context.Context) error

// Handler serves the probe endpoints.
type Handler struct {
	ready  ReadyFunc
	logger *slog.Logger
}

// NewHandler constructs a Handler. A nil ready func always reports ready.
func NewHandler(ready ReadyFunc, logger *slog.Logger) *Handler {
	return &Handler{ready: ready, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", slog.Any("err", err))
			writeError(w, r, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
