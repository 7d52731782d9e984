package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

type apiTopicRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type apiCategory struct {
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	RoutePrefix string        `json:"route_prefix"`
	Expanded    bool          `json:"expanded"`
	Topics      []apiTopicRef `json:"topics"`
}

type apiTopic struct {
	*domain.Topic
	CategoryName string `json:"category_name"`
	URL          string `json:"url"`
}

type apiSearchHit struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	URL      string  `json:"url"`
	Score    float64 `json:"score"`
}

type apiSearchResponse struct {
	Query   string         `json:"query"`
	Results []apiSearchHit `json:"results"`
}

// Categories lists the sidebar with the visitor's expansion flags.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))

		cats := v.repo.Categories()
		out := make([]apiCategory, 0, len(cats))
		for _, cat := range cats {
			refs := make([]apiTopicRef, 0, len(cat.Topics))
			for _, ref := range cat.Topics {
				refs = append(refs, apiTopicRef{
					Slug:  ref.Slug,
					Title: ref.Title,
					URL:   views.TopicURL(cat.Name, ref.Slug),
				})
			}
			out = append(out, apiCategory{
				Name:        cat.Name,
				Icon:        cat.Icon,
				RoutePrefix: cat.RoutePrefix(),
				Expanded:    cat.Expanded,
				Topics:      refs,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// TopicJSON returns the topic named by {slug} with its rendered sections.
func TopicJSON(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		repo := d.Index.NewRepository()

		t, ok := repo.TopicBySlug(slug)
		if !ok {
			d.Recorder().IncTopicNotFound()
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "topic not found"})
			return
		}

		name := t.Category
		if cat, ok := repo.CategoryForSlug(slug); ok {
			name = cat.Name
		}
		writeJSON(w, http.StatusOK, apiTopic{
			Topic:        t,
			CategoryName: name,
			URL:          views.TopicURL(name, slug),
		})
	}
}

// SearchJSON ranks topics for ?q=.
func SearchJSON(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		v := &visit{repo: d.Index.NewRepository()}

		hits := []apiSearchHit{}
		for _, c := range searchTopics(d, v.repo.Topics(), q) {
			hits = append(hits, apiSearchHit{
				Slug:     c.Topic.Slug,
				Title:    c.Topic.Title,
				Category: categoryName(v, c.Topic),
				URL:      topicURL(v, c.Topic),
				Score:    c.TotalScore,
			})
		}

		writeJSON(w, http.StatusOK, apiSearchResponse{Query: q, Results: hits})
	}
}
