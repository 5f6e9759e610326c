package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/vmhl-standings/internal/http/handlers"
	"github.com/preston-bernstein/vmhl-standings/internal/http/middleware"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
)

// RouterDeps carries what NewRouter needs to serve the store.
type RouterDeps struct {
	Teams       *handlers.TeamsHandler
	Probes      *handlers.Handler
	AdminSecret string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewRouter registers HTTP routes on a chi mux.
func NewRouter(deps RouterDeps) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(deps.Logger, deps.Metrics))
	r.Use(middleware.CORS)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", deps.Probes.Health)
	r.Get("/ready", deps.Probes.Ready)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", deps.Teams.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminSecret(deps.AdminSecret, deps.Logger))
			r.Post("/", deps.Teams.Create)
			r.Put("/", deps.Teams.Update)
			r.Delete("/", deps.Teams.Delete)
			r.Patch("/", deps.Teams.Swap)
		})
	})
	return r
}
