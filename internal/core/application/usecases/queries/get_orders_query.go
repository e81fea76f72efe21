package queries

import (
	"errors"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/errs"
	"campusfood/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
	ErrGetOrdersQueryScopeIsRequired = errors.New(
		"at least one of customer, vendor, or rider scope is required",
	)
)

// GetOrdersQuery retrieves orders scoped to a participant. Scopes combine
// with AND semantics; an empty status list matches every status. At least
// one participant scope must be set so no caller can list everyone's
// orders.
//
// Example:
//
//	query, err := NewGetOrdersQuery(&customerID, nil, nil, nil)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID *kernel.UUID
	vendorID   *kernel.UUID
	riderID    *kernel.UUID
	statuses   []order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a scoped order listing query.
// Nil scope pointers are ignored; set ones are validated.
func NewGetOrdersQuery(
	customerID *kernel.UUID,
	vendorID *kernel.UUID,
	riderID *kernel.UUID,
	statuses []order.Status,
) (GetOrdersQuery, error) {
	ordersQuery := GetOrdersQuery{
		customerID: customerID,
		vendorID:   vendorID,
		riderID:    riderID,
		statuses:   statuses,
		guard:      guard.NewConstructorGuard(),
	}

	if customerID == nil && vendorID == nil && riderID == nil {
		return GetOrdersQuery{}, ErrGetOrdersQueryScopeIsRequired
	}

	for _, id := range []*kernel.UUID{customerID, vendorID, riderID} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("statuses", err)
		}
	}

	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer scope, nil when unscoped.
func (q GetOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// VendorID returns the vendor scope, nil when unscoped.
func (q GetOrdersQuery) VendorID() *kernel.UUID {
	return q.vendorID
}

// RiderID returns the rider scope, nil when unscoped.
func (q GetOrdersQuery) RiderID() *kernel.UUID {
	return q.riderID
}

// Statuses returns the status filter, empty when unfiltered.
func (q GetOrdersQuery) Statuses() []order.Status {
	return q.statuses
}

// GetOrdersQueryItem is one order line in the listing.
type GetOrdersQueryItem struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
}

// GetOrdersQueryResponse is one order as shown in a participant's list,
// including its line items.
type GetOrdersQueryResponse struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	VendorID         kernel.UUID
	RiderID          *kernel.UUID
	Status           order.Status
	DeliveryLocation string
	DeliveryNotes    string
	DeliveryFee      kernel.Money
	TotalAmount      kernel.Money
	ConfirmationCode string
	CreatedAt        time.Time
	Items            []GetOrdersQueryItem
}
