package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/logger"
)

const (
	// DefaultSessionIdle is the idle time after which a memory session is removed
	DefaultSessionIdle = 7 * 24 * time.Hour
)

// Sweeper removes sessions idle for longer than olderThan.
type Sweeper interface {
	Sweep(now time.Time, olderThan time.Duration) int
}

// SessionCollector periodically removes idle sessions from a Sweeper.
// Redis sessions expire through their TTL and need no collector.
type SessionCollector struct {
	sweeper   Sweeper
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(
	sweeper Sweeper,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *SessionCollector {
	if threshold == 0 {
		threshold = DefaultSessionIdle
	}

	return &SessionCollector{
		sweeper:   sweeper,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection
func (sc *SessionCollector) Start(ctx context.Context) error {
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect(time.Now())
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
}

// Collect removes the sessions idle since before now - threshold and
// returns how many were removed.
func (sc *SessionCollector) Collect(now time.Time) int {
	removed := sc.sweeper.Sweep(now, sc.threshold)

	if removed > 0 {
		sc.logger.Info("session garbage collection completed",
			logger.Int("sessions_deleted", removed),
			logger.Duration("idle_threshold", sc.threshold))
	} else {
		sc.logger.Debug("no sessions to garbage collect")
	}

	return removed
}
