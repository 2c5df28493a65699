package audit

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherAssignsIDAndTimestamp(t *testing.T) {
	pub := NewPublisher(4, slog.Default())
	pub.Emit(context.Background(), Event{RegistrationID: "r1", Action: ActionStarted})

	event := <-pub.Inbox()
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestPublisherDropsWhenFull(t *testing.T) {
	pub := NewPublisher(1, slog.Default())
	pub.Emit(context.Background(), Event{RegistrationID: "r1", Action: ActionStarted})
	// Second emit must not block even though nothing drains the inbox.
	done := make(chan struct{})
	go func() {
		pub.Emit(context.Background(), Event{RegistrationID: "r2", Action: ActionStarted})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on full inbox")
	}
}

func TestWorkerPersistsEvents(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(8, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	worker := NewWorker(pub.Inbox(), store, slog.Default())
	worker.Run(ctx)

	pub.Emit(ctx, Event{RegistrationID: "r1", Phone: "+5511999999999", Action: ActionStarted})
	pub.Emit(ctx, Event{RegistrationID: "r1", Action: ActionTransition, FromStatus: "aguardando_doc1", ToStatus: "aguardando_doc2"})

	require.Eventually(t, func() bool {
		events, err := store.ListByRegistration(context.Background(), "r1")
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	worker.Wait()

	events, err := store.ListByRegistration(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, ActionStarted, events[0].Action)
	assert.Equal(t, "aguardando_doc2", events[1].ToStatus)
}

func TestWorkerMirrorsToSink(t *testing.T) {
	store := NewMemoryStore()
	sink := &captureSink{}
	pub := NewPublisher(8, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	worker := NewWorker(pub.Inbox(), store, slog.Default(), WithSink(sink))
	worker.Run(ctx)

	pub.Emit(ctx, Event{RegistrationID: "r2", Action: ActionAccepted})

	require.Eventually(t, func() bool {
		return sink.count() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	worker.Wait()
}

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
