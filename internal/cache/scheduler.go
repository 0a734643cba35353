package cache

import (
	"context"
	"time"

	"github.com/bassista/go_items/internal/logger"
)

// StartRefreshScheduler runs a goroutine that recomputes the stats every interval.
// It is the fallback used when the data file cannot be watched.
// Returns a channel that is closed when the scheduler has stopped.
func StartRefreshScheduler(ctx context.Context, stats Recomputer, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("stats-refresh").Debugf("starting stats refresh scheduler with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("stats-refresh").Info("stats refresh scheduler stopped")
				return
			case <-ticker.C:
				logger.WithComponent("stats-refresh").Tracef("stats refresh tick")
				refresh(ctx, stats)
			}
		}
	}()
	return done
}

func refresh(ctx context.Context, stats Recomputer) {
	if err := ctx.Err(); err != nil {
		return
	}
	if err := stats.Recompute(ctx); err != nil {
		logger.WithComponent("stats-refresh").Debugf("scheduled recompute failed: %v", err)
	}
}
