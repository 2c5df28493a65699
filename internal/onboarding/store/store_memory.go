package store

import (
	"context"
	"sort"
	"sync"

	"pratico/internal/onboarding/models"
	"pratico/pkg/platform/sentinel"
)

// MemoryStore is the in-memory Store used by unit tests and local runs
// without Postgres. It enforces the same uniqueness and versioning rules as
// the Postgres store.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*models.Registration
}

func NewMemory() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*models.Registration)}
}

func (s *MemoryStore) Create(ctx context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Phone == reg.Phone && !row.Status.Terminal() {
			return sentinel.ErrConflict
		}
	}
	if _, exists := s.rows[reg.ID]; exists {
		return sentinel.ErrConflict
	}

	reg.Version = 1
	s.rows[reg.ID] = clone(reg)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(row), nil
}

func (s *MemoryStore) FindActiveByPhone(ctx context.Context, phone string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*models.Registration
	for _, row := range s.rows {
		if row.Phone == phone && !row.Status.Terminal() {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return nil, sentinel.ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	return clone(candidates[0]), nil
}

func (s *MemoryStore) Update(ctx context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[reg.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if row.Version != reg.Version {
		return sentinel.ErrConflict
	}

	reg.Version++
	s.rows[reg.ID] = clone(reg)
	return nil
}

func clone(reg *models.Registration) *models.Registration {
	out := *reg
	out.Documents = make(map[models.DocSlot]models.DocumentRef, len(reg.Documents))
	for slot, ref := range reg.Documents {
		out.Documents[slot] = ref
	}
	out.Pending = append([]models.Field(nil), reg.Pending...)
	if reg.AcceptedAt != nil {
		t := *reg.AcceptedAt
		out.AcceptedAt = &t
	}
	if reg.LastDocumentAt != nil {
		t := *reg.LastDocumentAt
		out.LastDocumentAt = &t
	}
	if reg.ActiveSince != nil {
		t := *reg.ActiveSince
		out.ActiveSince = &t
	}
	return &out
}
