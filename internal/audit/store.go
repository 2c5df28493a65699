package audit

import "context"

// Store is the append-only persistence for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRegistration(ctx context.Context, registrationID string) ([]Event, error)
}
