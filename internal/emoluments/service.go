package emoluments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pratico/internal/emoluments/metrics"
	dErrors "pratico/pkg/domain-errors"
	"pratico/pkg/platform/sentinel"
)

// Service answers deed-cost lookups over the active fee tables and manages
// the tables themselves.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeedCost finds the bracket containing the property value in the UF's
// active table. A value above the table's ceiling falls back to the last
// bracket with a note; a value below the floor has no answer.
func (s *Service) DeedCost(ctx context.Context, uf string, propertyValue float64) (DeedCost, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if uf == "" {
		return DeedCost{}, dErrors.New(dErrors.CodeBadRequest, "uf is required")
	}
	if propertyValue <= 0 {
		return DeedCost{}, dErrors.New(dErrors.CodeBadRequest, "property value must be positive")
	}

	table, err := s.store.GetActiveByUF(ctx, uf)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLookup("no_table")
			return DeedCost{}, dErrors.New(dErrors.CodeNotFound, "no active fee table for "+uf)
		}
		s.metrics.IncrementLookup("error")
		return DeedCost{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load fee table", err)
	}
	cost, err := costFromTable(table, propertyValue)
	if err != nil {
		s.metrics.IncrementLookup("no_bracket")
		return DeedCost{}, err
	}
	s.metrics.IncrementLookup("ok")
	return cost, nil
}

func costFromTable(table *Table, propertyValue float64) (DeedCost, error) {
	if len(table.Brackets) == 0 {
		return DeedCost{}, dErrors.New(dErrors.CodeNotFound, "fee table for "+table.UF+" has no brackets")
	}
	brackets := append([]Bracket(nil), table.Brackets...)
	sort.Slice(brackets, func(i, j int) bool {
		if brackets[i].RangeFrom != brackets[j].RangeFrom {
			return brackets[i].RangeFrom < brackets[j].RangeFrom
		}
		return brackets[i].RangeTo < brackets[j].RangeTo
	})

	for _, b := range brackets {
		if propertyValue >= b.RangeFrom && propertyValue <= b.RangeTo {
			return DeedCost{
				UF:            table.UF,
				PropertyValue: propertyValue,
				Amount:        b.Amount,
				BracketFrom:   b.RangeFrom,
				BracketTo:     b.RangeTo,
			}, nil
		}
	}

	last := brackets[len(brackets)-1]
	if propertyValue > last.RangeTo {
		return DeedCost{
			UF:            table.UF,
			PropertyValue: propertyValue,
			Amount:        last.Amount,
			BracketFrom:   last.RangeFrom,
			BracketTo:     last.RangeTo,
			Note:          "valor acima do teto da tabela; usando última faixa",
		}, nil
	}
	return DeedCost{}, dErrors.New(dErrors.CodeNotFound,
		fmt.Sprintf("no bracket covers value %.2f in %s", propertyValue, table.UF))
}

// DeedEconomy compares the base UF's cost against every active table and
// reports the cheapest alternative.
func (s *Service) DeedEconomy(ctx context.Context, baseUF string, propertyValue float64) (Economy, error) {
	baseCost, err := s.DeedCost(ctx, baseUF, propertyValue)
	if err != nil {
		return Economy{}, err
	}

	tables, err := s.store.ListActive(ctx)
	if err != nil {
		return Economy{}, dErrors.Wrap(dErrors.CodeInternal, "failed to list fee tables", err)
	}

	best := baseCost
	for _, table := range tables {
		cost, err := costFromTable(table, propertyValue)
		if err != nil {
			// A table that cannot price this value just doesn't compete.
			continue
		}
		if cost.Amount < best.Amount {
			best = cost
		}
	}

	economy := Economy{
		BaseUF:   baseCost.UF,
		BaseCost: baseCost,
		BestUF:   best.UF,
		BestCost: best,
		Savings:  baseCost.Amount - best.Amount,
	}
	if baseCost.Amount > 0 {
		economy.SavingsPct = economy.Savings / baseCost.Amount * 100
	}
	s.metrics.IncrementEconomy()
	return economy, nil
}

// UpsertTable validates and saves a fee table draft.
func (s *Service) UpsertTable(ctx context.Context, table *Table) (*Table, error) {
	table.UF = strings.ToUpper(strings.TrimSpace(table.UF))
	if len(table.UF) != 2 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "uf must be a two-letter code")
	}
	if table.Year < 2000 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "year is out of range")
	}
	if len(table.Brackets) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "table needs at least one bracket")
	}
	for _, b := range table.Brackets {
		if b.RangeFrom < 0 || b.RangeTo < b.RangeFrom || b.Amount < 0 {
			return nil, dErrors.New(dErrors.CodeBadRequest, "bracket ranges must be non-negative and ordered")
		}
	}
	if table.ID == "" {
		table.ID = uuid.NewString()
	}
	if table.Status == "" {
		table.Status = TableDraft
	}
	now := time.Now()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = now
	}
	table.UpdatedAt = now

	if err := s.store.Upsert(ctx, table); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to save fee table", err)
	}
	s.logger.InfoContext(ctx, "fee table saved",
		"table_id", table.ID,
		"uf", table.UF,
		"year", table.Year,
	)
	return table, nil
}

// ActivateTable promotes a table; the store demotes the UF's previous
// active table in the same operation.
func (s *Service) ActivateTable(ctx context.Context, id string) error {
	if err := s.store.Activate(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "fee table not found")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to activate fee table", err)
	}
	s.metrics.IncrementActivation()
	return nil
}

func (s *Service) ListTables(ctx context.Context) ([]*Table, error) {
	tables, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list fee tables", err)
	}
	return tables, nil
}
