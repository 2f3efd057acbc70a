package counter

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultTickInterval is the pause between increment passes.
const DefaultTickInterval = time.Millisecond

// Driver is the perpetual background task that increments every counter by
// one per tick. Each tick is one full pass, so the sum grows by exactly
// length per tick and every counter rises at the same rate.
type Driver struct {
	store    *Store
	interval time.Duration
	logger   *zap.SugaredLogger
}

func NewDriver(store *Store, interval time.Duration, logger *zap.SugaredLogger) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Driver{store: store, interval: interval, logger: logger}
}

// Run increments all counters once per interval until ctx is cancelled.
// It returns only after observing cancellation, so the caller can wait on it
// before tearing down the store.
func (d *Driver) Run(ctx context.Context) {
	d.logger.Infof("increment driver started, tick interval %s", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		d.store.IncrementAll()

		select {
		case <-ctx.Done():
			d.logger.Info("increment driver stopped")
			return
		case <-ticker.C:
		}
	}
}
