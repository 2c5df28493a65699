package queue

import (
	"context"
	"log/slog"

	"pratico/internal/onboarding/models"
)

// Handler processes one inbound event end to end.
type Handler func(ctx context.Context, phone string, event models.InboundEvent)

// Inbound decouples webhook acknowledgment from state-machine work: the
// webhook handler enqueues and returns 200 immediately, workers do the slow
// collaborator calls.
type Inbound struct {
	events  chan item
	handler Handler
	logger  *slog.Logger
	workers int
}

type item struct {
	phone string
	event models.InboundEvent
}

func NewInbound(handler Handler, workers, buffer int, logger *slog.Logger) *Inbound {
	if workers < 1 {
		workers = 1
	}
	return &Inbound{
		events:  make(chan item, buffer),
		handler: handler,
		logger:  logger,
		workers: workers,
	}
}

// Enqueue hands an event to the workers. It never blocks: when the buffer is
// full the event is dropped with a log line, matching the tolerant webhook
// contract (the user can resend).
func (q *Inbound) Enqueue(phone string, event models.InboundEvent) {
	select {
	case q.events <- item{phone: phone, event: event}:
	default:
		q.logger.Warn("inbound queue full, dropping event",
			"phone", phone,
			"event_type", event.Type,
		)
	}
}

// Run consumes events until ctx is cancelled. Run one goroutine per worker.
func (q *Inbound) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-q.events:
			q.handler(ctx, it.phone, it.event)
		}
	}
}

// Workers returns the configured worker count for the caller to spawn.
func (q *Inbound) Workers() int { return q.workers }
