package ports

import (
	"context"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider profiles.
// Profiles are keyed by the rider's user ID.
type RiderRepository interface {
	// Add persists a new rider profile.
	Add(ctx context.Context, profile *rider.RiderProfile) error

	// Update persists changes to an existing profile (counters, rating).
	Update(ctx context.Context, profile *rider.RiderProfile) error

	// Get retrieves a profile by the rider's user ID.
	// Returns errs.ErrObjectNotFound if the profile does not exist.
	Get(ctx context.Context, userID kernel.UUID) (*rider.RiderProfile, error)
}
