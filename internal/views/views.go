// Package views renders the documentation pages from embedded templates and
// serves the static assets.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	ViewTopic  = "topic"
	ViewSearch = "search"
)

// SearchResult is one entry of the search results list.
type SearchResult struct {
	Title    string
	URL      string
	Category string
}

// Page is everything the layout needs. Categories is the visitor's live
// category list, so expansion flags are the visitor's own.
type Page struct {
	View         string
	Title        string
	CurrentPath  string
	Categories   []*domain.SidebarCategory
	Slug         string
	Topic        *domain.Topic
	CategoryName string
	SidebarOpen  bool
	LiveEnabled  bool
	Query        string
	Results      []SearchResult
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"categoryPrefix": domain.CategoryRoutePrefix,
		// Section bodies are trusted authoring input, rendered at load time.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page. The page is rendered into a buffer first so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, p *Page) error {
	if p.View == "" {
		p.View = ViewTopic
	}
	if p.Title == "" {
		p.Title = pageTitle(p)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func pageTitle(p *Page) string {
	switch {
	case p.View == ViewSearch:
		return "Search"
	case p.Topic != nil:
		return p.Topic.Title
	default:
		return "Not found"
	}
}

// TopicURL returns the canonical page path of a topic in a category.
func TopicURL(categoryName, slug string) string {
	return "/docs/" + domain.CategoryRoutePrefix(categoryName) + "/" + slug
}

// Static serves the embedded CSS and JS. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
