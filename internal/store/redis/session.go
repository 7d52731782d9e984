package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/javadocs/internal/session"
)

const (
	// DefaultSessionTTL is the default TTL for session entries (7 days)
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Store persists sessions and topic view counters in Redis.
// Sessions expire on their own: every save refreshes the TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Store = (*Store)(nil)

// NewStore creates a new Redis store. A zero ttl selects DefaultSessionTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Save stores a session in Redis
func (s *Store) Save(ctx context.Context, st *session.State) error {
	stored := *st
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, SessionKey(st.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves a session from Redis by ID
func (s *Store) Get(ctx context.Context, id string) (*session.State, error) {
	data, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var st session.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &st, nil
}

// Delete removes a session from Redis
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CountSessions counts the stored sessions by scanning their keys
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixSession+"*", 100).Iterator()
	for iter.Next(ctx) {
		if _, err := ExtractSessionID(iter.Val()); err == nil {
			count++
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return count, nil
}
