package queries

import (
	"context"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler reads a rider's completed deliveries from
// the database with a single joined query.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryHistoryQueryHandler creates a handler for delivery history
// queries. Requires a GORM database connection for query execution.
func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the rider's delivered orders,
// newest first.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) ([]GetDeliveryHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetDeliveryHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.vendor_id,
			v.name,
			o.delivery_location,
			o.delivery_fee,
			o.total_amount,
			o.created_at
		FROM orders o
		JOIN vendors v ON v.id = o.vendor_id
		WHERE o.rider_id = ? AND o.status = ?
		ORDER BY o.created_at DESC
	`, query.RiderID().String(), order.Delivered).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetDeliveryHistoryQueryResponse
		var id, vendorID uuid.UUID
		var fee, total decimal.Decimal

		err = rows.Scan(
			&id,
			&vendorID,
			&delivery.VendorName,
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

		history = append(history, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
