// Package queries contains read-only operations over the order store.
// Implements the query side of the CQRS architecture: handlers read
// denormalized rows with raw SQL, bypassing the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the claimable pool: every order in
// "ready" status with no rider assigned. Rider dashboards poll this view
// and race to claim from it.
//
// Example:
//
//	query := NewGetAvailableDeliveriesQuery()
//	handler := NewGetAvailableDeliveriesQueryHandler(db)
//
//	pool, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load claimable pool: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a rider\n", len(pool))
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the claimable pool.
// This is a parameterless query; the pool is global across vendors.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableDeliveriesQueryIsNotConstructed if validation fails.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one claimable order as shown on a
// rider's dashboard: where to pick up, where to drop off, and what the run
// pays.
type GetAvailableDeliveriesQueryResponse struct {
	ID               kernel.UUID
	VendorID         kernel.UUID
	VendorName       string
	VendorLocation   string
	DeliveryLocation string
	DeliveryFee      kernel.Money
	TotalAmount      kernel.Money
	CreatedAt        time.Time
}
