package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
)

// ToggleSidebar flips the visitor's sidebar and redirects back.
func ToggleSidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))
		v.nav.ToggleSidebar()
		v.save(r.Context(), d)
		redirectBack(w, r)
	}
}

// CloseSidebar closes the visitor's sidebar and redirects back.
func CloseSidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))
		v.nav.CloseSidebar()
		v.save(r.Context(), d)
		redirectBack(w, r)
	}
}

// ToggleCategory flips the expansion of the category whose route prefix is
// {category} and redirects back. Unknown prefixes answer 404.
func ToggleCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))

		cat, ok := v.repo.CategoryByPrefix(chi.URLParam(r, "category"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		v.nav.ToggleCategory(cat.Name)
		v.save(r.Context(), d)
		redirectBack(w, r)
	}
}
