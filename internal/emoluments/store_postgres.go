package emoluments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pratico/pkg/platform/sentinel"
	"pratico/pkg/platform/tx"
)

// PostgresStore persists fee tables with brackets as a JSONB column; the
// tables are small and always read whole.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Upsert(ctx context.Context, table *Table) error {
	brackets, err := json.Marshal(table.Brackets)
	if err != nil {
		return fmt.Errorf("marshal brackets: %w", err)
	}
	const query = `
		INSERT INTO emolument_tables (id, uf, year, status, brackets, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (uf, year) DO UPDATE SET
			status = EXCLUDED.status,
			brackets = EXCLUDED.brackets,
			updated_at = EXCLUDED.updated_at`

	_, err = s.querier(ctx).ExecContext(ctx, query,
		table.ID, table.UF, table.Year, table.Status, brackets,
		table.CreatedAt, table.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert fee table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Activate(ctx context.Context, id string) error {
	q := s.querier(ctx)

	var uf string
	err := q.QueryRowContext(ctx, `SELECT uf FROM emolument_tables WHERE id = $1`, id).Scan(&uf)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load fee table: %w", err)
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE emolument_tables SET status = 'draft' WHERE uf = $1 AND status = 'active'`, uf); err != nil {
		return fmt.Errorf("demote active table: %w", err)
	}
	if _, err := q.ExecContext(ctx,
		`UPDATE emolument_tables SET status = 'active' WHERE id = $1`, id); err != nil {
		return fmt.Errorf("activate fee table: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetActiveByUF(ctx context.Context, uf string) (*Table, error) {
	rows, err := s.querier(ctx).QueryContext(ctx,
		`SELECT id, uf, year, status, brackets, created_at, updated_at
		 FROM emolument_tables WHERE uf = $1 AND status = 'active' LIMIT 1`, uf)
	if err != nil {
		return nil, fmt.Errorf("query active table: %w", err)
	}
	defer rows.Close()
	tables, err := scanTables(rows)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return tables[0], nil
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]*Table, error) {
	rows, err := s.querier(ctx).QueryContext(ctx,
		`SELECT id, uf, year, status, brackets, created_at, updated_at
		 FROM emolument_tables WHERE status = 'active' ORDER BY uf, year`)
	if err != nil {
		return nil, fmt.Errorf("query active tables: %w", err)
	}
	defer rows.Close()
	return scanTables(rows)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Table, error) {
	rows, err := s.querier(ctx).QueryContext(ctx,
		`SELECT id, uf, year, status, brackets, created_at, updated_at
		 FROM emolument_tables ORDER BY uf, year`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()
	return scanTables(rows)
}

func scanTables(rows *sql.Rows) ([]*Table, error) {
	var out []*Table
	for rows.Next() {
		var t Table
		var brackets []byte
		if err := rows.Scan(&t.ID, &t.UF, &t.Year, &t.Status, &brackets, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fee table: %w", err)
		}
		if err := json.Unmarshal(brackets, &t.Brackets); err != nil {
			return nil, fmt.Errorf("unmarshal brackets: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
