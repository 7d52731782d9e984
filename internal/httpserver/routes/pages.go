package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/docs/{category}/{topic}", handlers.Topic(d))
	r.Get("/docs/{topic}", handlers.TopicShortcut(d))
	r.Get("/search", handlers.SearchPage(d))
	r.Handle("/static/*", views.Static())
}
