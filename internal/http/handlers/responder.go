package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/preston-bernstein/vmhl-standings/internal/http/middleware"
	"github.com/preston-bernstein/vmhl-standings/internal/http/requestutil"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, r, status, body)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// MethodNotAllowed answers verbs the store does not serve.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound answers unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}
