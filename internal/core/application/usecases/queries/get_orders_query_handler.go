package queries

import (
	"context"
	"database/sql"
	"strings"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves a participant's orders from the database.
// Reads order rows and their line items with two raw queries, then stitches
// the items onto the responses in memory.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for scoped order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the scoped orders, newest first.
// The result is a snapshot; liveness comes from the change feed.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if query.CustomerID() != nil {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, query.CustomerID().String())
	}
	if query.VendorID() != nil {
		conditions = append(conditions, "vendor_id = ?")
		args = append(args, query.VendorID().String())
	}
	if query.RiderID() != nil {
		conditions = append(conditions, "rider_id = ?")
		args = append(args, query.RiderID().String())
	}
	if len(query.Statuses()) > 0 {
		conditions = append(conditions, "status IN ?")
		args = append(args, lo.Map(query.Statuses(), func(s order.Status, _ int) string {
			return s.String()
		}))
	}

	orders, err := h.readOrders(ctx, conditions, args)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := h.readItems(ctx, lo.Map(orders, func(o GetOrdersQueryResponse, _ int) string {
		return o.ID.String()
	}))
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID.String()]
	}
	return orders, nil
}

func (h GetOrdersQueryHandler) readOrders(
	ctx context.Context,
	conditions []string,
	args []any,
) ([]GetOrdersQueryResponse, error) {
	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			vendor_id,
			rider_id,
			status,
			delivery_location,
			delivery_notes,
			delivery_fee,
			total_amount,
			otp_code,
			created_at
		FROM orders
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY created_at DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id, customerID, vendorID uuid.UUID
		var riderID uuid.NullUUID
		var status string
		var notes, code sql.NullString
		var fee, total decimal.Decimal

		err = rows.Scan(
			&id,
			&customerID,
			&vendorID,
			&riderID,
			&status,
			&resp.DeliveryLocation,
			&notes,
			&fee,
			&total,
			&code,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if resp.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
			return nil, err
		}
		if riderID.Valid {
			rid, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.RiderID = &rid
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		if resp.DeliveryFee, err = kernel.NewMoney(fee); err != nil {
			return nil, err
		}
		if resp.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.DeliveryNotes = notes.String
		resp.ConfirmationCode = code.String

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// readItems loads the line items for the listed orders, keyed by order ID.
func (h GetOrdersQueryHandler) readItems(
	ctx context.Context,
	orderIDs []string,
) (map[string][]GetOrdersQueryItem, error) {
	type itemRow struct {
		orderID string
		item    GetOrdersQueryItem
	}
	itemRows := make([]itemRow, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id IN ?
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row itemRow
		var orderID, menuItemID uuid.UUID
		var price decimal.Decimal

		err = rows.Scan(
			&orderID,
			&menuItemID,
			&row.item.Name,
			&price,
			&row.item.Quantity,
		)
		if err != nil {
			return nil, err
		}

		if row.item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		if row.item.UnitPrice, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		row.orderID = orderID.String()

		itemRows = append(itemRows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(itemRows, func(r itemRow) string { return r.orderID })
	return lo.MapValues(grouped, func(group []itemRow, _ string) []GetOrdersQueryItem {
		return lo.Map(group, func(r itemRow, _ int) GetOrdersQueryItem { return r.item })
	}), nil
}
