package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakePurger struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakePurger) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func (f *fakePurger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestResetTokenCleanup_CleanupUsesClock(t *testing.T) {
	p := &fakePurger{}
	w := NewResetTokenCleanup(p, zap.NewNop(), time.Hour)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.cleanup()

	if p.count() != 1 || !p.calls[0].Equal(fixed) {
		t.Errorf("expected one purge at %v, got %v", fixed, p.calls)
	}
}

func TestResetTokenCleanup_ErrorIsLoggedNotFatal(t *testing.T) {
	p := &fakePurger{err: errors.New("boom")}
	w := NewResetTokenCleanup(p, zap.NewNop(), time.Hour)

	w.cleanup()
	w.cleanup()

	if p.count() != 2 {
		t.Errorf("expected 2 attempts, got %d", p.count())
	}
}

func TestResetTokenCleanup_RunsUntilStopped(t *testing.T) {
	p := &fakePurger{}
	w := NewResetTokenCleanup(p, zap.NewNop(), 5*time.Millisecond)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for p.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	n := p.count()
	if n < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", n)
	}
	time.Sleep(20 * time.Millisecond)
	if p.count() != n {
		t.Error("worker kept running after Stop")
	}
}
