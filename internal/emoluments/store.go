package emoluments

import "context"

// Store persists fee tables. Implementations return pkg/platform/sentinel
// errors: ErrNotFound when no active table serves a UF, ErrConflict when an
// upsert races.
type Store interface {
	// Upsert saves a table (matched by UF + year), replacing its brackets.
	Upsert(ctx context.Context, table *Table) error
	// Activate marks the table active and demotes any other active table
	// for the same UF to draft.
	Activate(ctx context.Context, id string) error
	GetActiveByUF(ctx context.Context, uf string) (*Table, error)
	ListActive(ctx context.Context) ([]*Table, error)
	List(ctx context.Context) ([]*Table, error)
}
