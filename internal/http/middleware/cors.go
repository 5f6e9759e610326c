package middleware

import (
	"net/http"
	"strings"

	"github.com/preston-bernstein/vmhl-standings/internal/http/requestutil"
)

var (
	allowedMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions,
	}, ", ")
	allowedHeaders = strings.Join([]string{"Content-Type", requestutil.HeaderAdminPassword, requestutil.HeaderRequestID}, ", ")
)

const preflightMaxAge = "86400"

// CORS allows any origin and answers preflight requests directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Max-Age", preflightMaxAge)
		w.WriteHeader(http.StatusOK)
	})
}
