package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/handlers"
)

func init() { Register(registerUI) }

func registerUI(r chi.Router, d deps.Deps) {
	r.Route("/ui", func(r chi.Router) {
		r.Post("/sidebar/toggle", handlers.ToggleSidebar(d))
		r.Post("/sidebar/close", handlers.CloseSidebar(d))
		r.Post("/categories/{category}/toggle", handlers.ToggleCategory(d))
	})
}
