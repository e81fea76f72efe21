package queries

import (
	"context"

	"campusfood/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its line items.
// Delegates row reading to the listing handler so both views scan rows
// the same way.
type GetOrderQueryHandler struct {
	orders GetOrdersQueryHandler
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: NewGetOrdersQueryHandler(db)}
}

// Handle executes the query. Returns an ObjectNotFoundError when no order
// exists under the identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	orders, err := h.orders.readOrders(ctx,
		[]string{"id = ?"}, []any{query.OrderID().String()})
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	if len(orders) == 0 {
		return GetOrdersQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	items, err := h.orders.readItems(ctx, []string{query.OrderID().String()})
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	found := orders[0]
	found.Items = items[found.ID.String()]
	return found, nil
}
