package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
)

func init() { RegisterLongLived(registerLive) }

func registerLive(r chi.Router, d deps.Deps) {
	if !d.LiveEnabled {
		return
	}
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.LiveBurst,
		RefillPerIPPerMin: d.LiveRefillPerIP,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Get("/live", handlers.Live(d))
}
