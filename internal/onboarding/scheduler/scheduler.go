package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunFunc processes one registration's document batch. Implementations are
// idempotent: a registration that already left processing makes the run a
// no-op.
type RunFunc func(ctx context.Context, registrationID string)

// Timer schedules the batch document processor a fixed delay after a
// registration enters processing. Cancellation is checked at fire time by
// the run function itself, not proactively, so duplicate schedules for the
// same registration are harmless.
type Timer struct {
	delay  time.Duration
	run    RunFunc
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewTimer(delay time.Duration, run RunFunc, logger *slog.Logger) *Timer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Timer{
		delay:   delay,
		run:     run,
		logger:  logger,
		pending: make(map[string]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Schedule arms the batch timer for a registration. A timer already pending
// for the same registration is not duplicated.
func (t *Timer) Schedule(registrationID string) {
	t.mu.Lock()
	if _, exists := t.pending[registrationID]; exists {
		t.mu.Unlock()
		return
	}
	t.pending[registrationID] = struct{}{}
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			t.mu.Lock()
			delete(t.pending, registrationID)
			t.mu.Unlock()
		}()

		select {
		case <-t.ctx.Done():
			t.logger.Info("batch timer aborted on shutdown", "registration_id", registrationID)
			return
		case <-time.After(t.delay):
		}

		t.run(t.ctx, registrationID)
	}()
}

// Close stops pending timers and waits for in-flight runs.
func (t *Timer) Close() {
	t.cancel()
	t.wg.Wait()
}
