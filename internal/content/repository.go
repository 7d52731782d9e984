package content

import (
	"sync"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

// Repository gives read access to a Dataset and owns the expansion state of
// its own copy of the sidebar categories.
//
// A Repository belongs to a single visitor (one request or one live view).
// Topics are shared with the Dataset; categories are not.
type Repository struct {
	mu         sync.RWMutex
	topics     []*domain.Topic
	categories []*domain.SidebarCategory
}

// NewRepository builds a repository on top of ds. The first category starts
// expanded, every other one collapsed.
func NewRepository(ds *Dataset) *Repository {
	r := &Repository{}
	if ds == nil {
		return r
	}

	r.topics = ds.Topics
	r.categories = make([]*domain.SidebarCategory, 0, len(ds.Categories))
	for i, tmpl := range ds.Categories {
		cat := tmpl
		cat.Expanded = i == 0
		r.categories = append(r.categories, &cat)
	}
	return r
}

// Categories returns the live category list in authoring order.
// Mutate expansion through ToggleCategory or SetExpanded.
func (r *Repository) Categories() []*domain.SidebarCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.categories
}

// Topics returns every topic in display order.
func (r *Repository) Topics() []*domain.Topic {
	return r.topics
}

// TopicBySlug returns the first topic whose slug equals slug.
func (r *Repository) TopicBySlug(slug string) (*domain.Topic, bool) {
	for _, t := range r.topics {
		if t.Slug == slug {
			return t, true
		}
	}
	return nil, false
}

// CategoryForSlug returns the first category listing slug.
func (r *Repository) CategoryForSlug(slug string) (*domain.SidebarCategory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cat := range r.categories {
		if cat.Contains(slug) {
			return cat, true
		}
	}
	return nil, false
}

// CategoryByPrefix returns the category whose route prefix equals prefix.
func (r *Repository) CategoryByPrefix(prefix string) (*domain.SidebarCategory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cat := range r.categories {
		if cat.RoutePrefix() == prefix {
			return cat, true
		}
	}
	return nil, false
}

// ToggleCategory flips the expansion of the named category.
// It reports false when no category has that name.
func (r *Repository) ToggleCategory(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := r.findLocked(name)
	if cat == nil {
		return false
	}
	cat.Expanded = !cat.Expanded
	return true
}

// SetExpanded sets the expansion of the named category.
// It reports false when no category has that name.
func (r *Repository) SetExpanded(name string, expanded bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := r.findLocked(name)
	if cat == nil {
		return false
	}
	cat.Expanded = expanded
	return true
}

// Expansion returns the expansion flag of every category, by name.
func (r *Repository) Expansion() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(r.categories))
	for _, cat := range r.categories {
		out[cat.Name] = cat.Expanded
	}
	return out
}

// RestoreExpansion applies previously captured flags. Names that no longer
// exist are ignored; categories missing from state keep their default.
func (r *Repository) RestoreExpansion(state map[string]bool) {
	if len(state) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cat := range r.categories {
		if expanded, ok := state[cat.Name]; ok {
			cat.Expanded = expanded
		}
	}
}

func (r *Repository) findLocked(name string) *domain.SidebarCategory {
	for _, cat := range r.categories {
		if cat.Name == name {
			return cat
		}
	}
	return nil
}
