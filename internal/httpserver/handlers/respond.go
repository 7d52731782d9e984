package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderPage fills p from the visit and writes it with status.
func renderPage(w http.ResponseWriter, d deps.Deps, v *visit, status int, p *views.Page) {
	snap := v.nav.Snapshot()
	p.Categories = v.repo.Categories()
	p.Slug = snap.Slug
	p.Topic = snap.Topic
	p.CategoryName = snap.CategoryName
	p.SidebarOpen = snap.SidebarOpen
	p.LiveEnabled = d.LiveEnabled

	var buf bytes.Buffer
	if err := d.Views.Render(&buf, p); err != nil {
		d.Logger.Error("page render failed", logger.String("path", p.CurrentPath), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirectBack answers a form post with 303 to its "return" field. Only
// local absolute paths are followed; anything else goes to "/".
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.PostFormValue("return")
	if !isLocalPath(target) {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}
