package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg       Registrar
	mws       []Middleware
	longLived bool
}

var registry []entry

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterLongLived registers routes that must not be cut by the request
// timeout, such as websocket endpoints.
func RegisterLongLived(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws, longLived: true})
}

// RegisterAll mounts every registrar. Regular routes run behind
// middleware.Timeout(timeout) when timeout > 0. Called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps, timeout time.Duration) {
	bounded := r
	if timeout > 0 {
		bounded = r.With(middleware.Timeout(timeout))
	}

	for _, e := range registry {
		target := bounded
		if e.longLived {
			target = r
		}
		if len(e.mws) > 0 {
			target = target.With(e.mws...)
		}
		e.reg(target, d)
	}
}
