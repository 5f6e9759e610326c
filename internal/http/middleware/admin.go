package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/preston-bernstein/vmhl-standings/internal/http/requestutil"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// RequireAdminSecret rejects requests whose X-Admin-Password does not match
// secret with 401 {"error":"Unauthorized"}. An empty secret rejects everything.
func RequireAdminSecret(secret string, fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secretMatches(secret, requestutil.AdminPassword(r)) {
				logging.Warn(logging.FromContext(r.Context(), fallback), "admin unauthorized",
					slog.String("client_ip", requestutil.ClientIP(r)),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secretMatches(secret, presented string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(presented)) == 1
}
