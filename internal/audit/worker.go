package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Sink mirrors persisted events to an external stream.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker drains the publisher inbox into the store and, when configured,
// mirrors each event to the sink. Persistence failures are logged, never
// propagated back to the caller that emitted the event.
type Worker struct {
	inbox  <-chan Event
	store  Store
	sink   Sink
	logger *slog.Logger

	wg sync.WaitGroup
}

type WorkerOption func(*Worker)

func WithSink(sink Sink) WorkerOption {
	return func(w *Worker) { w.sink = sink }
}

func NewWorker(inbox <-chan Event, store Store, logger *slog.Logger, opts ...WorkerOption) *Worker {
	w := &Worker{
		inbox:  inbox,
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) Run(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.inbox:
				if !ok {
					return
				}
				w.handle(ctx, event)
			}
		}
	}()
}

func (w *Worker) handle(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist audit event",
			"error", err,
			"action", event.Action,
			"registration_id", event.RegistrationID,
		)
	}
	if w.sink == nil {
		return
	}
	if err := w.sink.Publish(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish audit event",
			"error", err,
			"action", event.Action,
		)
	}
}

// Wait blocks until the run loop exits. Call after cancelling the context.
func (w *Worker) Wait() { w.wg.Wait() }
