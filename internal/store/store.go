package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pfdash/finance-dashboard/internal/domain"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidID       = errors.New("invalid profile id")
	ErrEmptyUpdate     = errors.New("update carries no field")
	ErrRejectedUpdate  = errors.New("update rejected")
)

// CheckFunc inspects, and may normalize in place, the profile an update is about to store.
type CheckFunc func(p *domain.Profile) error

// ProfileStore persists whole profile documents. Save assigns an id to a new profile.
// Update runs check on the merged profile while holding the record, so what is stored is
// exactly what was checked; a nil check accepts everything.
type ProfileStore interface {
	Load(ctx context.Context, id string) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, id string, u domain.ProfileUpdate, check CheckFunc) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}

// applyUpdate merges u into current and runs check on the result.
func applyUpdate(current domain.Profile, u domain.ProfileUpdate, check CheckFunc) (domain.Profile, error) {
	updated := u.Apply(current)
	if check != nil {
		if err := check(&updated); err != nil {
			return domain.Profile{}, fmt.Errorf("%w: %w", ErrRejectedUpdate, err)
		}
	}
	return updated, nil
}

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// prepareNew gives a profile without id a fresh UUID and creation time.
func prepareNew(p *domain.Profile) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = nowFunc().UTC()
	}
}

// parseID accepts only canonical UUIDs.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return u, nil
}
