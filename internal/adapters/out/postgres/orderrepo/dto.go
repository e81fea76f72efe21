// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexes on the
// participant references and on status for pool and listing queries.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	VendorID         uuid.UUID  `gorm:"type:uuid;index"`
	RiderID          *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(16);index"`
	DeliveryLocation string
	DeliveryNotes    string
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	OtpCode          *string         `gorm:"column:otp_code;type:varchar(6)"`
	CreatedAt        time.Time
	Items            []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line snapshot.
// Rows are created together with the order and never updated afterward.
type OrderItemDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity   int
}

// TableName specifies the database table name for order line snapshots.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional rider assignment and its
// confirmation code.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	var otpCode *string
	if code := aggregate.ConfirmationCode(); code != nil {
		raw := code.String()
		otpCode = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		VendorID:         aggregate.VendorID().Bytes(),
		RiderID:          riderID,
		Status:           aggregate.Status().String(),
		DeliveryLocation: aggregate.DeliveryLocation(),
		DeliveryNotes:    aggregate.DeliveryNotes(),
		DeliveryFee:      aggregate.DeliveryFee().Amount(),
		TotalAmount:      aggregate.TotalAmount().Amount(),
		OtpCode:          otpCode,
		CreatedAt:        aggregate.CreatedAt(),
		Items:            items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the item snapshots and the
// rider assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var code *order.ConfirmationCode
	if dto.OtpCode != nil {
		c, codeErr := order.ConfirmationCodeFromString(*dto.OtpCode)
		if codeErr != nil {
			return nil, codeErr
		}
		code = &c
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(menuItemID, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, customerID, vendorID, riderID, status,
		dto.DeliveryLocation, dto.DeliveryNotes, items,
		deliveryFee, totalAmount, code, dto.CreatedAt,
	)
}
