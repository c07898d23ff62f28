package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	pollTimeout         = 3 * time.Second
)

// HealthClient is the part of the API client the poller needs.
type HealthClient interface {
	Health(ctx context.Context) error
	Categories(ctx context.Context) ([]itemsapi.Category, error)
}

var _ HealthClient = (*itemsapi.Client)(nil)

// StartPoller launches a background goroutine that refreshes the health
// store. Consecutive failures back off exponentially up to maxBackoff. It
// returns immediately; the goroutine exits when ctx is done.
func StartPoller(ctx context.Context, store *state.Store, client HealthClient, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client HealthClient, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	if err := client.Health(ctx); err != nil {
		store.Update(nil, err)
		logger.Debug("health poll failed", zap.Error(err))
		return
	}
	categories, err := client.Categories(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Debug("categories poll failed", zap.Error(err))
		return
	}
	store.Update(categories, nil)
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures >= 30 {
		return maxBackoff
	}
	d := base << failures
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}
