package queries

import (
	"errors"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// GetDeliveryHistoryQuery retrieves a rider's completed deliveries, newest
// first. Backs the rider's earnings screen, so each row carries the
// delivery fee the rider earned on that run.
type GetDeliveryHistoryQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates a query for a rider's delivery history.
// The rider's user ID must be valid.
func NewGetDeliveryHistoryQuery(riderID kernel.UUID) (GetDeliveryHistoryQuery, error) {
	historyQuery := GetDeliveryHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := riderID.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}
	historyQuery.riderID = riderID

	return historyQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryHistoryQueryIsNotConstructed if validation fails.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

// RiderID returns the rider whose history is requested.
func (q GetDeliveryHistoryQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetDeliveryHistoryQueryResponse is one completed delivery in the rider's
// history.
type GetDeliveryHistoryQueryResponse struct {
	ID               kernel.UUID
	VendorID         kernel.UUID
	VendorName       string
	DeliveryLocation string
	DeliveryFee      kernel.Money
	TotalAmount      kernel.Money
	CreatedAt        time.Time
}
