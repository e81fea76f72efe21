package ports

import (
	"context"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/vendor"
)

// VendorRepository defines the persistence contract for vendor entities.
type VendorRepository interface {
	// Add persists a new vendor.
	Add(ctx context.Context, entity *vendor.Vendor) error

	// Update persists changes to an existing vendor (active flag, rating).
	Update(ctx context.Context, entity *vendor.Vendor) error

	// Get retrieves a vendor by its unique identifier.
	// Returns errs.ErrObjectNotFound if the vendor does not exist.
	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)
}
