package redis

import (
	"context"
	"fmt"
	"strconv"
)

// GetViewStats retrieves the view counters of every topic
func (s *Store) GetViewStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, TopicViewsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get view stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for slug, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip values not written by SaveViewStats
			continue
		}
		stats[slug] = n
	}

	return stats, nil
}

// SaveViewStats writes counters in bulk, overwriting existing values
func (s *Store) SaveViewStats(ctx context.Context, stats map[string]int64) error {
	if len(stats) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for slug, n := range stats {
		pipe.HSet(ctx, TopicViewsKey(), slug, n)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save view stats: %w", err)
	}
	return nil
}
