package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/index"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
)

// ViewStatsStore persists topic view counters.
type ViewStatsStore interface {
	GetViewStats(ctx context.Context) (map[string]int64, error)
	SaveViewStats(ctx context.Context, stats map[string]int64) error
}

// ViewSyncer keeps the index view counters and Redis in step: counters are
// loaded once on start, then flushed periodically and on Stop.
type ViewSyncer struct {
	store    ViewStatsStore
	index    *index.ContentIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	started  atomic.Bool
}

// NewViewSyncer creates a new view counter syncer
func NewViewSyncer(
	store ViewStatsStore,
	idx *index.ContentIndex,
	log logger.Logger,
	interval time.Duration,
) *ViewSyncer {
	return &ViewSyncer{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start loads persisted counters and starts the flush loop. A failed load is
// logged; counters then start from zero.
func (vs *ViewSyncer) Start(ctx context.Context) error {
	if err := vs.Sync(ctx); err != nil {
		vs.logger.Warn("failed to load view counters from redis", logger.Error(err))
	}

	vs.started.Store(true)
	ticker := time.NewTicker(vs.interval)
	go func() {
		defer close(vs.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				vs.flushLogged(ctx)
			case <-vs.stopCh:
				vs.finalFlush()
				return
			case <-ctx.Done():
				vs.finalFlush()
				return
			}
		}
	}()

	return nil
}

// Stop flushes the counters one last time and stops the loop.
func (vs *ViewSyncer) Stop() {
	vs.stopOnce.Do(func() {
		close(vs.stopCh)
		if vs.started.Load() {
			<-vs.done
		}
	})
}

// Sync loads counters from Redis into the index
func (vs *ViewSyncer) Sync(ctx context.Context) error {
	stats, err := vs.store.GetViewStats(ctx)
	if err != nil {
		return err
	}

	vs.index.MergeViews(stats)
	vs.logger.Info("synced view counters from redis", logger.Int("topics", len(stats)))
	return nil
}

// Flush writes the index counters to Redis
func (vs *ViewSyncer) Flush(ctx context.Context) error {
	return vs.store.SaveViewStats(ctx, vs.index.ViewStats())
}

// finalFlush uses its own context: the loop context may be canceled already.
func (vs *ViewSyncer) finalFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	vs.flushLogged(ctx)
}

func (vs *ViewSyncer) flushLogged(ctx context.Context) {
	if err := vs.Flush(ctx); err != nil {
		vs.logger.Warn("failed to flush view counters to redis", logger.Error(err))
	}
}
