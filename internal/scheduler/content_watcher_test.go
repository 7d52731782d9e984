package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/javadocs/internal/logger"
)

func TestContentWatcher_TriggersOnYAMLChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "topics"), 0o755))

	trigger := make(chan struct{}, 1)
	cw, err := NewContentWatcher(dir, trigger, logger.Nop(), 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics", "draft.yml"), []byte("ignored"), 0o644))
	select {
	case <-trigger:
		t.Fatal("a file the loader never reads triggered a reload")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics", "streams.yaml"), []byte("title: x"), 0o644))
	select {
	case <-trigger:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a reload request")
	}
}

func TestContentWatcher_MissingDir(t *testing.T) {
	cw, err := NewContentWatcher(filepath.Join(t.TempDir(), "missing"), make(chan struct{}, 1), logger.Nop(), 0)
	require.NoError(t, err)
	defer cw.Stop()

	require.Error(t, cw.Start(context.Background()))
}
