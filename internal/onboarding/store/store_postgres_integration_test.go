//go:build integration

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pratico/internal/onboarding/models"
	"pratico/pkg/platform/sentinel"
	"pratico/pkg/testutil/containers"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	pc := containers.NewPostgresContainer(t)

	migration, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "0001_registrations.sql"))
	require.NoError(t, err)
	_, err = pc.DB.ExecContext(context.Background(), string(migration))
	require.NoError(t, err)

	return NewPostgres(pc.DB)
}

func TestPostgresRoundTrip(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	reg := models.NewRegistration("+5511999999999", time.Now().UTC())
	reg.Profile.Name = "Maria Silva"
	reg.Pending = []models.Field{models.FieldNationalID}
	require.NoError(t, s.Create(ctx, reg))

	got, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.Phone, got.Phone)
	assert.Equal(t, models.StatusAwaitingDoc1, got.Status)
	assert.Equal(t, "Maria Silva", got.Profile.Name)
	assert.Equal(t, []models.Field{models.FieldNationalID}, got.Pending)
}

func TestPostgresOneActivePerPhone(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	first := models.NewRegistration("+5511999999999", time.Now().UTC())
	require.NoError(t, s.Create(ctx, first))

	dup := models.NewRegistration("+5511999999999", time.Now().UTC())
	err := s.Create(ctx, dup)
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	// Terminal registration frees the phone for a new one.
	first.Status = models.StatusLicenseInvalid
	require.NoError(t, s.Update(ctx, first))
	require.NoError(t, s.Create(ctx, models.NewRegistration("+5511999999999", time.Now().UTC())))
}

func TestPostgresFindActiveByPhone(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	_, err := s.FindActiveByPhone(ctx, "+5511999999999")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	reg := models.NewRegistration("+5511999999999", time.Now().UTC())
	require.NoError(t, s.Create(ctx, reg))

	got, err := s.FindActiveByPhone(ctx, "+5511999999999")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, got.ID)
}

func TestPostgresOptimisticUpdate(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	reg := models.NewRegistration("+5511999999999", time.Now().UTC())
	require.NoError(t, s.Create(ctx, reg))

	a, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)
	b, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)

	a.Status = models.StatusAwaitingDoc2
	require.NoError(t, s.Update(ctx, a))

	b.Status = models.StatusAwaitingDoc2
	err = s.Update(ctx, b)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}
