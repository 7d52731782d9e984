package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// registerOps mounts the operational endpoints. Health probes stay open;
// the rest is limited to AllowedCIDRS.
func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))

	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Get("/infra", handlers.Infra(d))
		r.Post("/reload", handlers.Reload(d))
		if d.MetricsHandler != nil {
			r.Method("GET", "/metrics", d.MetricsHandler)
		}
	})
}
