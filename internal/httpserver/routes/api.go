package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.CORS(d.CORSOrigins))
		r.Get("/categories", handlers.Categories(d))
		r.Get("/topics/{slug}", handlers.TopicJSON(d))
		r.Get("/search", handlers.SearchJSON(d))
	})
}
