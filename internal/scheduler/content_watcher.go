package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/javadocs/internal/logger"
)

// DefaultWatchDebounce collapses bursts of editor writes into one reload.
const DefaultWatchDebounce = 500 * time.Millisecond

// ContentWatcher watches a content directory and its topics/ subdirectory
// and requests a reload when a YAML file changes.
type ContentWatcher struct {
	dir      string
	trigger  chan<- struct{}
	logger   logger.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changed  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewContentWatcher creates a watcher sending reload requests on trigger.
func NewContentWatcher(dir string, trigger chan<- struct{}, log logger.Logger, debounce time.Duration) (*ContentWatcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	return &ContentWatcher{
		dir:      absDir,
		trigger:  trigger,
		logger:   log,
		debounce: debounce,
		watcher:  watcher,
		changed:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The topics/ subdirectory is optional.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	if err := cw.watcher.Add(cw.dir); err != nil {
		return fmt.Errorf("failed to watch content dir %s: %w", cw.dir, err)
	}

	topicsDir := filepath.Join(cw.dir, "topics")
	if info, err := os.Stat(topicsDir); err == nil && info.IsDir() {
		if err := cw.watcher.Add(topicsDir); err != nil {
			return fmt.Errorf("failed to watch topics dir %s: %w", topicsDir, err)
		}
	}

	cw.logger.Info("watching content directory", logger.String("dir", cw.dir))

	go cw.watchLoop(ctx)
	go cw.debounceLoop(ctx)

	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (cw *ContentWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		if err := cw.watcher.Close(); err != nil {
			cw.logger.Warn("failed to close content watcher", logger.Error(err))
		}
	})
}

func (cw *ContentWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			cw.logger.Debug("content change detected",
				logger.String("file", event.Name),
				logger.String("op", event.Op.String()))
			select {
			case cw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("content watcher error", logger.Error(err))
		}
	}
}

func (cw *ContentWatcher) debounceLoop(ctx context.Context) {
	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case <-cw.changed:
			timer.Reset(cw.debounce)
		case <-timer.C:
			if !Trigger(cw.trigger) {
				cw.logger.Debug("content reload already pending")
			}
		}
	}
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml":
		return true
	}
	return false
}
