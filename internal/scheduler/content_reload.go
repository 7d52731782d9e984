package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/index"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/metrics"
)

// ContentReloader loads the dataset into the index on start, then again on
// every interval tick and manual trigger. An invalid dataset never replaces
// a served one.
type ContentReloader struct {
	loader        *content.Loader
	index         *index.ContentIndex
	metrics       metrics.Recorder
	logger        logger.Logger
	strict        bool
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	mu            sync.Mutex
}

// NewContentReloader creates a new content reloader. interval <= 0 disables
// periodic reloads. strict makes an invalid initial dataset fatal; otherwise
// it is served with its violations logged.
func NewContentReloader(
	loader *content.Loader,
	idx *index.ContentIndex,
	rec metrics.Recorder,
	log logger.Logger,
	strict bool,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &ContentReloader{
		loader:        loader,
		index:         idx,
		metrics:       rec,
		logger:        log,
		strict:        strict,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start performs the initial load and starts the reload loop.
func (cr *ContentReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial content load failed: %w", err)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual content reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. It is safe to call more than once.
func (cr *ContentReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

// Reload loads and validates the dataset and swaps it into the index.
func (cr *ContentReloader) Reload(_ context.Context) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	start := time.Now()
	cr.logger.Info("reloading content", logger.String("source", cr.loader.Source()))

	ds, err := cr.loader.Load()
	if err != nil {
		cr.metrics.IncContentReload(metrics.ResultFailed)
		return fmt.Errorf("failed to load content: %w", err)
	}

	if err := ds.Validate(); err != nil {
		cr.metrics.IncContentReload(metrics.ResultInvalid)
		if cr.strict || cr.index.Ready() {
			return fmt.Errorf("content is inconsistent, keeping previous dataset: %w", err)
		}
		cr.logger.Warn("serving inconsistent content", logger.Error(err))
	} else {
		cr.metrics.IncContentReload(metrics.ResultSuccess)
	}

	cr.index.UpdateDataset(ds)
	cr.metrics.SetTopics(ds.TopicCount())

	cr.logger.Info("content loaded",
		logger.Int("topics", ds.TopicCount()),
		logger.Int("categories", len(ds.Categories)),
		logger.Duration("elapsed", time.Since(start)))

	return nil
}

// Trigger requests a reload without blocking. It reports false when a
// reload is already pending.
func Trigger(ch chan<- struct{}) bool {
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
