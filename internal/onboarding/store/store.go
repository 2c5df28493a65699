package store

import (
	"context"

	"pratico/internal/onboarding/models"
)

// Store persists registrations. Implementations return pkg/platform/sentinel
// errors for infrastructure facts:
//   - Create: sentinel.ErrConflict when the phone already has a non-terminal
//     registration (the storage layer owns that uniqueness rule).
//   - Get / FindActiveByPhone: sentinel.ErrNotFound.
//   - Update: sentinel.ErrConflict when the optimistic version is stale.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	Get(ctx context.Context, id string) (*models.Registration, error)
	// FindActiveByPhone returns the most-recently-created non-terminal
	// registration for the phone.
	FindActiveByPhone(ctx context.Context, phone string) (*models.Registration, error)
	// Update persists reg if reg.Version matches the stored row, then
	// increments the version on the passed registration.
	Update(ctx context.Context, reg *models.Registration) error
}
