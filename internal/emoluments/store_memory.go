package emoluments

import (
	"context"
	"sort"
	"sync"

	"pratico/pkg/platform/sentinel"
)

// MemoryStore keeps fee tables in process memory. Used in tests and when
// the service runs without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*Table)}
}

func (s *MemoryStore) Upsert(_ context.Context, table *Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.tables {
		if existing.UF == table.UF && existing.Year == table.Year && id != table.ID {
			table.ID = id
			break
		}
	}
	s.tables[table.ID] = cloneTable(table)
	return nil
}

func (s *MemoryStore) Activate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.tables[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, t := range s.tables {
		if t.UF == target.UF && t.Status == TableActive {
			t.Status = TableDraft
		}
	}
	target.Status = TableActive
	return nil
}

func (s *MemoryStore) GetActiveByUF(_ context.Context, uf string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.UF == uf && t.Status == TableActive {
			return cloneTable(t), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) ListActive(_ context.Context) ([]*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Table
	for _, t := range s.tables {
		if t.Status == TableActive {
			out = append(out, cloneTable(t))
		}
	}
	sortTables(out)
	return out, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, cloneTable(t))
	}
	sortTables(out)
	return out, nil
}

func sortTables(tables []*Table) {
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].UF != tables[j].UF {
			return tables[i].UF < tables[j].UF
		}
		return tables[i].Year < tables[j].Year
	})
}

func cloneTable(t *Table) *Table {
	out := *t
	out.Brackets = append([]Bracket(nil), t.Brackets...)
	return &out
}
