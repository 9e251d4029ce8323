// internal/app/system/workers/resetcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ResetTokenPurger unsets reset tokens that expired at or before now.
// *userstore.Store satisfies it.
type ResetTokenPurger interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// ResetTokenCleanup is a background worker that removes expired password
// reset tokens so stale hashes do not linger on user documents.
type ResetTokenCleanup struct {
	users    ResetTokenPurger
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewResetTokenCleanup creates a worker that purges every interval.
func NewResetTokenCleanup(users ResetTokenPurger, logger *zap.Logger, interval time.Duration) *ResetTokenCleanup {
	return &ResetTokenCleanup{
		users:    users,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *ResetTokenCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("reset token cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *ResetTokenCleanup) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("reset token cleanup worker stopped")
	})
}

func (w *ResetTokenCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *ResetTokenCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	defer cancel()

	count, err := w.users.ClearExpiredResetTokens(ctx, w.now())
	if err != nil {
		w.log.Error("failed to clear expired reset tokens", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("cleared expired reset tokens", zap.Int64("count", count))
	}
}
