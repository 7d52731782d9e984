package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It is the store used when
// Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*State),
	}
}

// Get returns a copy of the session stored under id.
func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st.Clone(), nil
}

// Save stores a copy of st, replacing any previous state with the same id.
func (m *MemoryStore) Save(_ context.Context, st *State) error {
	cp := st.Clone()
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[cp.ID] = cp
	return nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// Count returns the number of stored sessions.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Sweep deletes sessions not updated within olderThan of now and returns
// how many were removed.
func (m *MemoryStore) Sweep(now time.Time, olderThan time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, st := range m.sessions {
		if now.Sub(st.UpdatedAt) >= olderThan {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
