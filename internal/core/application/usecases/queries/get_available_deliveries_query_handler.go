package queries

import (
	"context"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler reads the claimable pool from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the pool view joins vendors for the pickup details.
//
// The view is a snapshot: any order in it may already be claimed by the
// time a rider acts, which the claim path resolves with its conditional
// write.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for pool queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all claimable orders.
// Returns ready, unassigned orders oldest first so long-waiting orders get
// claimed before fresh ones.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAvailableDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.vendor_id,
			v.name,
			v.location,
			o.delivery_location,
			o.delivery_fee,
			o.total_amount,
			o.created_at
		FROM orders o
		JOIN vendors v ON v.id = o.vendor_id
		WHERE o.status = ? AND o.rider_id IS NULL
		ORDER BY o.created_at
	`, order.Ready).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetAvailableDeliveriesQueryResponse
		var id, vendorID uuid.UUID
		var fee, total decimal.Decimal

		err = rows.Scan(
			&id,
			&vendorID,
			&delivery.VendorName,
			&delivery.VendorLocation,
			&delivery.DeliveryLocation,
			&fee,
			&total,
			&delivery.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if delivery.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if delivery.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
			return nil, err
		}
		if delivery.DeliveryFee, err = kernel.NewMoney(fee); err != nil {
			return nil, err
		}
		if delivery.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
