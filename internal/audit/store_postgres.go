package audit

import (
	"context"
	"database/sql"
	"fmt"

	"pratico/pkg/platform/tx"
)

// PostgresStore persists audit events to the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	const query = `
		INSERT INTO audit_events (id, occurred_at, registration_id, phone, action, from_status, to_status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.querier(ctx).ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.RegistrationID,
		event.Phone,
		event.Action,
		event.FromStatus,
		event.ToStatus,
		event.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRegistration(ctx context.Context, registrationID string) ([]Event, error) {
	const query = `
		SELECT id, occurred_at, registration_id, phone, action, from_status, to_status, reason
		FROM audit_events
		WHERE registration_id = $1
		ORDER BY occurred_at ASC`

	rows, err := s.querier(ctx).QueryContext(ctx, query, registrationID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.RegistrationID, &e.Phone, &e.Action, &e.FromStatus, &e.ToStatus, &e.Reason); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
