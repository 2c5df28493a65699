package emoluments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pratico/pkg/domain-errors"
)

func seedTables(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()

	sp, err := svc.UpsertTable(ctx, &Table{
		UF:   "SP",
		Year: 2026,
		Brackets: []Bracket{
			{RangeFrom: 1000, RangeTo: 100000, Amount: 800},
			{RangeFrom: 100000.01, RangeTo: 500000, Amount: 2500},
			{RangeFrom: 500000.01, RangeTo: 1000000, Amount: 5000},
		},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ActivateTable(ctx, sp.ID))

	rj, err := svc.UpsertTable(ctx, &Table{
		UF:   "RJ",
		Year: 2026,
		Brackets: []Bracket{
			{RangeFrom: 1000, RangeTo: 500000, Amount: 1800},
			{RangeFrom: 500000.01, RangeTo: 2000000, Amount: 3600},
		},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ActivateTable(ctx, rj.ID))
}

func TestDeedCostFindsBracket(t *testing.T) {
	svc := NewService(NewMemoryStore())
	seedTables(t, svc)

	cost, err := svc.DeedCost(context.Background(), "sp", 250000)
	require.NoError(t, err)
	assert.Equal(t, "SP", cost.UF)
	assert.InDelta(t, 2500, cost.Amount, 0.001)
	assert.Empty(t, cost.Note)
}

func TestDeedCostAboveCeilingUsesLastBracket(t *testing.T) {
	svc := NewService(NewMemoryStore())
	seedTables(t, svc)

	cost, err := svc.DeedCost(context.Background(), "SP", 5000000)
	require.NoError(t, err)
	assert.InDelta(t, 5000, cost.Amount, 0.001)
	assert.NotEmpty(t, cost.Note)
}

func TestDeedCostBelowFloorIsNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore())
	seedTables(t, svc)

	_, err := svc.DeedCost(context.Background(), "SP", 500)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeedCostNoActiveTable(t *testing.T) {
	svc := NewService(NewMemoryStore())

	_, err := svc.DeedCost(context.Background(), "MG", 100000)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeedCostRejectsBadInput(t *testing.T) {
	svc := NewService(NewMemoryStore())

	_, err := svc.DeedCost(context.Background(), "", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.DeedCost(context.Background(), "SP", -1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDeedEconomyFindsCheapestUF(t *testing.T) {
	svc := NewService(NewMemoryStore())
	seedTables(t, svc)

	economy, err := svc.DeedEconomy(context.Background(), "SP", 250000)
	require.NoError(t, err)
	assert.Equal(t, "SP", economy.BaseUF)
	assert.Equal(t, "RJ", economy.BestUF)
	assert.InDelta(t, 700, economy.Savings, 0.001)
	assert.InDelta(t, 28, economy.SavingsPct, 0.01)
}

func TestDeedEconomyBaseIsAlreadyCheapest(t *testing.T) {
	svc := NewService(NewMemoryStore())
	seedTables(t, svc)

	// In the low bracket SP (800) beats RJ (1800).
	economy, err := svc.DeedEconomy(context.Background(), "SP", 50000)
	require.NoError(t, err)
	assert.Equal(t, "SP", economy.BestUF)
	assert.Zero(t, economy.Savings)
}

func TestActivateDemotesPreviousTable(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	old, err := svc.UpsertTable(ctx, &Table{
		UF: "SP", Year: 2025,
		Brackets: []Bracket{{RangeFrom: 0, RangeTo: 1000000, Amount: 700}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ActivateTable(ctx, old.ID))

	next, err := svc.UpsertTable(ctx, &Table{
		UF: "SP", Year: 2026,
		Brackets: []Bracket{{RangeFrom: 0, RangeTo: 1000000, Amount: 900}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ActivateTable(ctx, next.ID))

	active, err := store.GetActiveByUF(ctx, "SP")
	require.NoError(t, err)
	assert.Equal(t, 2026, active.Year)
}

func TestUpsertValidation(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	_, err := svc.UpsertTable(ctx, &Table{UF: "São Paulo", Year: 2026, Brackets: []Bracket{{RangeTo: 1, Amount: 1}}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.UpsertTable(ctx, &Table{UF: "SP", Year: 2026})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.UpsertTable(ctx, &Table{UF: "SP", Year: 2026, Brackets: []Bracket{{RangeFrom: 10, RangeTo: 5, Amount: 1}}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
