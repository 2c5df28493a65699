package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/onboarding/models"
	"pratico/pkg/platform/sentinel"
)

func TestMemoryStore_CreateEnforcesOneActivePerPhone(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	first := models.NewRegistration("+5511999999999", time.Now())
	require.NoError(t, s.Create(ctx, first))

	second := models.NewRegistration("+5511999999999", time.Now())
	assert.ErrorIs(t, s.Create(ctx, second), sentinel.ErrConflict)

	// terminal rows free the phone for a fresh registration
	first.Status = models.StatusLicenseInvalid
	require.NoError(t, s.Update(ctx, first))
	assert.NoError(t, s.Create(ctx, second))
}

func TestMemoryStore_FindActiveByPhone(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	t.Run("no rows returns not found", func(t *testing.T) {
		_, err := s.FindActiveByPhone(ctx, "+5511999999999")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("most recent non-terminal wins", func(t *testing.T) {
		old := models.NewRegistration("+5511988887777", time.Now().Add(-time.Hour))
		require.NoError(t, s.Create(ctx, old))
		old.Status = models.StatusActive
		require.NoError(t, s.Update(ctx, old))

		fresh := models.NewRegistration("+5511988887777", time.Now())
		require.NoError(t, s.Create(ctx, fresh))

		got, err := s.FindActiveByPhone(ctx, "+5511988887777")
		require.NoError(t, err)
		assert.Equal(t, fresh.ID, got.ID)
	})
}

func TestMemoryStore_UpdateOptimisticVersion(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	reg := models.NewRegistration("+5511999999999", time.Now())
	require.NoError(t, s.Create(ctx, reg))
	require.EqualValues(t, 1, reg.Version)

	stale, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)

	reg.Status = models.StatusAwaitingDoc2
	require.NoError(t, s.Update(ctx, reg))
	assert.EqualValues(t, 2, reg.Version)

	stale.Status = models.StatusAwaitingDoc2
	assert.ErrorIs(t, s.Update(ctx, stale), sentinel.ErrConflict)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	reg := models.NewRegistration("+5511999999999", time.Now())
	reg.Documents[models.DocIdentity] = models.DocumentRef{URL: "https://cdn/x", ReceivedAt: time.Now()}
	require.NoError(t, s.Create(ctx, reg))

	got, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)
	got.Documents[models.DocLicense] = models.DocumentRef{URL: "mutated"}
	got.Profile.Name = "mutated"

	again, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Len(t, again.Documents, 1)
	assert.Empty(t, again.Profile.Name)
}
