package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
	"github.com/MrSnakeDoc/javadocs/internal/metrics"
	"github.com/MrSnakeDoc/javadocs/internal/navigation"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

const searchLimit = 20

// Home redirects to the first topic of the first category.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := d.Index.Dataset()
		ref, ok := ds.FirstTopic()
		if !ok {
			v := openVisit(r.Context(), d, mw.SessionID(r.Context()))
			renderPage(w, d, v, http.StatusServiceUnavailable, &views.Page{
				Title:       "No content",
				CurrentPath: r.URL.Path,
			})
			return
		}

		name := ""
		for _, cat := range ds.Categories {
			if cat.Contains(ref.Slug) {
				name = cat.Name
				break
			}
		}
		http.Redirect(w, r, views.TopicURL(name, ref.Slug), http.StatusFound)
	}
}

// Topic renders /docs/{category}/{topic}. Arriving on a new slug is a route
// change: the visitor's Navigation State navigates and the sidebar closes.
// Reloading the current slug only restores the stored state.
func Topic(d deps.Deps) http.HandlerFunc {
	rec := d.Recorder()
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := chi.URLParam(r, "category")
		slug := chi.URLParam(r, "topic")

		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))

		if cat, ok := v.repo.CategoryForSlug(slug); ok && cat.RoutePrefix() != prefix {
			http.Redirect(w, r, views.TopicURL(cat.Name, slug), http.StatusMovedPermanently)
			return
		}

		if v.nav.CurrentSlug() != slug {
			v.nav.Navigate(navigation.TopicRoute(slug))
			rec.IncNavigation(metrics.SourcePage)
		}

		status := http.StatusOK
		snap := v.nav.Snapshot()
		if snap.Topic == nil {
			status = http.StatusNotFound
			rec.IncTopicNotFound()
		} else {
			d.Index.IncrementViews(snap.Slug)
			rec.IncTopicView(snap.CategoryName)
		}

		v.save(r.Context(), d)
		renderPage(w, d, v, status, &views.Page{View: views.ViewTopic, CurrentPath: r.URL.Path})
	}
}

// TopicShortcut redirects /docs/{topic} to the canonical topic URL.
func TopicShortcut(d deps.Deps) http.HandlerFunc {
	rec := d.Recorder()
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "topic")
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))

		if cat, ok := v.repo.CategoryForSlug(slug); ok {
			http.Redirect(w, r, views.TopicURL(cat.Name, slug), http.StatusFound)
			return
		}

		if v.nav.CurrentSlug() != slug {
			v.nav.Navigate(navigation.TopicRoute(slug))
			rec.IncNavigation(metrics.SourcePage)
		}
		rec.IncTopicNotFound()
		v.save(r.Context(), d)
		renderPage(w, d, v, http.StatusNotFound, &views.Page{
			View:        views.ViewTopic,
			Title:       "Not found",
			CurrentPath: r.URL.Path,
		})
	}
}

// SearchPage renders the ranked results for ?q= inside the layout.
func SearchPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		v := openVisit(r.Context(), d, mw.SessionID(r.Context()))

		var results []views.SearchResult
		for _, c := range searchTopics(d, v.repo.Topics(), q) {
			results = append(results, views.SearchResult{
				Title:    c.Topic.Title,
				URL:      topicURL(v, c.Topic),
				Category: categoryName(v, c.Topic),
			})
		}

		renderPage(w, d, v, http.StatusOK, &views.Page{
			View:        views.ViewSearch,
			CurrentPath: r.URL.RequestURI(),
			Query:       q,
			Results:     results,
		})
	}
}

func searchTopics(d deps.Deps, topics []*domain.Topic, q string) []*domain.Candidate {
	query := domain.ParseQuery(q)
	if len(query.Fragments) == 0 {
		return nil
	}
	candidates := domain.RankTopics(query, topics, d.Index.Views)
	if len(candidates) > searchLimit {
		candidates = candidates[:searchLimit]
	}
	return candidates
}

func categoryName(v *visit, t *domain.Topic) string {
	if cat, ok := v.repo.CategoryForSlug(t.Slug); ok {
		return cat.Name
	}
	return t.Category
}

func topicURL(v *visit, t *domain.Topic) string {
	return views.TopicURL(categoryName(v, t), t.Slug)
}
