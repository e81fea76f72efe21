// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the change notifier.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
)

// OrderFilter narrows an order listing. Fields combine with AND semantics;
// a slice field matches any of its values. A zero filter matches everything.
type OrderFilter struct {
	CustomerID *kernel.UUID
	VendorID   *kernel.UUID
	RiderID    *kernel.UUID
	Statuses   []order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// The repository is the single writer of order state; every status change
// goes through a precondition-checked update so concurrent writers cannot
// silently overwrite each other.
type OrderRepository interface {
	// Add persists a new order aggregate with its item snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists a status transition already applied to the
	// aggregate. The write carries previous as a precondition: if the stored
	// status no longer matches, nothing is written and the call fails with
	// order.ErrStaleTransition.
	UpdateStatus(ctx context.Context, aggregate *order.Order, previous order.Status) error

	// Claim persists a rider assignment already applied to the aggregate as
	// a single conditional write: the stored row must still be in ready
	// status with no rider. If zero rows match, the claim lost the race and
	// the call fails with order.ErrAlreadyClaimed.
	Claim(ctx context.Context, aggregate *order.Order) error

	// List retrieves the orders matching the filter, newest first.
	// The result is a finite snapshot; liveness comes from the notifier.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// ListPendingOlderThan retrieves pending orders created before the
	// cutoff. Used by the expiry sweep.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
