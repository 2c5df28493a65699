package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps audit events in process memory. Used in tests and when
// the service runs without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) ListByRegistration(_ context.Context, registrationID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.RegistrationID == registrationID {
			out = append(out, e)
		}
	}
	return out, nil
}
