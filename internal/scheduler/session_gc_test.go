package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/session"
)

func TestSessionCollector_Collect(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	now := time.Now()

	states := []*session.State{
		{ID: "active", UpdatedAt: now},
		{ID: "recent", UpdatedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: "idle", UpdatedAt: now.Add(-35 * 24 * time.Hour)},
	}
	for _, st := range states {
		if err := store.Save(ctx, st); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	gc := NewSessionCollector(store, logger.New("error", false), time.Hour, 30*24*time.Hour)

	if removed := gc.Collect(now); removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if store.Count() != 2 {
		t.Errorf("Expected 2 sessions after GC, got %d", store.Count())
	}
	if _, err := store.Get(ctx, "idle"); err == nil {
		t.Error("Idle session was not removed")
	}
	if _, err := store.Get(ctx, "recent"); err != nil {
		t.Error("Recent session was incorrectly removed")
	}
}

func TestSessionCollector_DefaultThreshold(t *testing.T) {
	gc := NewSessionCollector(session.NewMemoryStore(), logger.Nop(), time.Hour, 0)
	if gc.threshold != DefaultSessionIdle {
		t.Errorf("Expected default threshold %v, got %v", DefaultSessionIdle, gc.threshold)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := gc.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	gc.Stop()
	gc.Stop()
	cancel()
}
