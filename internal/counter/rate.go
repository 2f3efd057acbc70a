package counter

import (
	"context"
	"sync"
	"time"

	"github.com/alexrttr/qt-table-increment/model"
	"go.uber.org/zap"
)

// DefaultSampleInterval is the cadence the estimator samples the counter sum
// at. It is intentionally much slower than the increment tick, so the
// estimator measures throughput rather than individual ticks.
const DefaultSampleInterval = time.Second

// Estimator derives an instantaneous increment rate from successive samples
// of the aggregate counter sum. The first sample only arms the baseline;
// every later sample emits (sum - lastSum) / elapsed. A negative rate is
// reported as-is: counters may have been removed or reset between samples.
type Estimator struct {
	store    *Store
	interval time.Duration
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	armed   bool
	lastSum float64
	lastAt  time.Time
	latest  *model.RateReading
}

func NewEstimator(store *Store, interval time.Duration, logger *zap.SugaredLogger) *Estimator {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Estimator{store: store, interval: interval, logger: logger}
}

// Observe feeds one sample into the estimator. It returns the computed rate
// and true once a baseline exists and the clock moved forward. A non-positive
// elapsed time skips the sample entirely, leaving the baseline untouched.
func (e *Estimator) Observe(sum float64, now time.Time) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.armed {
		e.armed = true
		e.lastSum = sum
		e.lastAt = now
		return 0, false
	}

	elapsed := now.Sub(e.lastAt).Seconds()
	if elapsed <= 0 {
		return 0, false
	}

	rate := (sum - e.lastSum) / elapsed
	e.lastSum = sum
	e.lastAt = now
	e.latest = &model.RateReading{Rate: rate, Observed: now}
	return rate, true
}

// Latest returns the most recently emitted reading, or false while the
// estimator has not produced one yet.
func (e *Estimator) Latest() (model.RateReading, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.latest == nil {
		return model.RateReading{}, false
	}
	return *e.latest, true
}

// Run samples the store once per interval until ctx is cancelled.
func (e *Estimator) Run(ctx context.Context) {
	e.logger.Infof("rate estimator started, sample interval %s", e.interval)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("rate estimator stopped")
			return
		case <-ticker.C:
			sum := float64(e.store.Snapshot().Sum())
			if rate, ok := e.Observe(sum, time.Now()); ok {
				e.logger.Debugf("rate sample: %.2f Hz", rate)
			}
		}
	}
}
