// Package session persists the per-visitor UI state (current topic, sidebar
// and category expansion) between requests.
package session

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/navigation"
)

// ErrNotFound is returned by a Store when no session has the requested id.
var ErrNotFound = errors.New("session not found")

// State is the persisted projection of a navigation state and the expansion
// flags of its repository.
type State struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	SidebarOpen bool            `json:"sidebar_open"`
	Expanded    map[string]bool `json:"expanded,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Store keeps session states by id.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, st *State) error
	Delete(ctx context.Context, id string) error
}

// NewState returns an empty state for id.
func NewState(id string) *State {
	return &State{ID: id}
}

// Clone returns a deep copy of st.
func (st *State) Clone() *State {
	if st == nil {
		return nil
	}
	out := *st
	out.Expanded = maps.Clone(st.Expanded)
	return &out
}

// Restore applies st to a freshly built repository and navigation state.
// Expansion flags come first so that the slug derives its category from the
// restored sidebar. A nil st leaves both untouched.
func Restore(st *State, repo *content.Repository, nav *navigation.State) {
	if st == nil {
		return
	}
	repo.RestoreExpansion(st.Expanded)
	if nav != nil {
		nav.Restore(st.Slug, st.SidebarOpen)
	}
}

// Capture copies the current slug, sidebar flag and expansion flags into st
// and stamps it.
func Capture(st *State, repo *content.Repository, nav *navigation.State) {
	if nav != nil {
		snap := nav.Snapshot()
		st.Slug = snap.Slug
		st.SidebarOpen = snap.SidebarOpen
	}
	st.Expanded = repo.Expansion()
	st.UpdatedAt = time.Now()
}
