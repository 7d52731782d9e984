package navigation

import (
	"sync"

	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

// Snapshot is a consistent view of a State: every field derives from Slug.
type Snapshot struct {
	Slug         string
	Topic        *domain.Topic // nil when Slug matches no topic
	CategoryName string        // "" when Slug belongs to no category
	SidebarOpen  bool
}

// State binds the active topic slug to its derived lookups and owns the
// sidebar toggle. Category expansion is delegated to the Repository.
//
// The slug and its derived topic and category are always written together
// under the same lock, so readers never see a mix of old and new values.
type State struct {
	repo     *content.Repository
	viewport Viewport

	mu           sync.RWMutex
	slug         string
	topic        *domain.Topic
	categoryName string
	sidebarOpen  bool
	disposed     bool
}

// New creates a navigation state with no topic selected.
func New(repo *content.Repository, viewport Viewport) *State {
	if viewport == nil {
		viewport = NopViewport{}
	}
	return &State{
		repo:     repo,
		viewport: viewport,
	}
}

// Navigate reacts to a route change:
//  1. the slug comes from the topic parameter ("" when absent)
//  2. the category listing the slug is expanded; no category is collapsed
//  3. the sidebar is closed
//  4. the viewport is scrolled to the top
//  5. the current topic and category name are recomputed
func (s *State) Navigate(params RouteParams) {
	slug := params.Topic()

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	categoryName := ""
	if cat, ok := s.repo.CategoryForSlug(slug); ok {
		s.repo.SetExpanded(cat.Name, true)
		categoryName = cat.Name
	}
	topic, _ := s.repo.TopicBySlug(slug)

	s.slug = slug
	s.topic = topic
	s.categoryName = categoryName
	s.sidebarOpen = false
	s.mu.Unlock()

	s.viewport.ScrollToTop()
}

// Restore sets the slug and sidebar flag without the navigation side
// effects. Used to rebuild a state from a saved session.
func (s *State) Restore(slug string, sidebarOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.slug = slug
	s.topic, _ = s.repo.TopicBySlug(slug)
	s.categoryName = ""
	if cat, ok := s.repo.CategoryForSlug(slug); ok {
		s.categoryName = cat.Name
	}
	s.sidebarOpen = sidebarOpen
}

// ToggleSidebar flips the sidebar.
func (s *State) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.disposed {
		s.sidebarOpen = !s.sidebarOpen
	}
}

// CloseSidebar closes the sidebar.
func (s *State) CloseSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.disposed {
		s.sidebarOpen = false
	}
}

// ToggleCategory flips the expansion of one category and reports whether
// it exists.
func (s *State) ToggleCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return false
	}
	return s.repo.ToggleCategory(name)
}

// ScrollToSection asks the viewport to bring a section of the current topic
// into view. It is a no-op, returning false, when there is no such section.
func (s *State) ScrollToSection(id string) bool {
	s.mu.RLock()
	topic := s.topic
	disposed := s.disposed
	s.mu.RUnlock()

	if disposed {
		return false
	}
	if _, ok := topic.Section(id); !ok {
		return false
	}
	s.viewport.ScrollIntoView(id)
	return true
}

// Snapshot returns the slug and everything derived from it.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Slug:         s.slug,
		Topic:        s.topic,
		CategoryName: s.categoryName,
		SidebarOpen:  s.sidebarOpen,
	}
}

// CurrentSlug returns the active topic slug, "" when none.
func (s *State) CurrentSlug() string { return s.Snapshot().Slug }

// CurrentTopic returns the topic matching the slug, or nil.
func (s *State) CurrentTopic() *domain.Topic { return s.Snapshot().Topic }

// CurrentCategoryName returns the category listing the slug, or "".
func (s *State) CurrentCategoryName() string { return s.Snapshot().CategoryName }

// SidebarOpen reports whether the sidebar is open.
func (s *State) SidebarOpen() bool { return s.Snapshot().SidebarOpen }

// Repository returns the repository the state reads from.
func (s *State) Repository() *content.Repository { return s.repo }

// Dispose turns every later mutation into a no-op.
func (s *State) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *State) Disposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.disposed
}
