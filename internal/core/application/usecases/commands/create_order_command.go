package commands

import (
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/errs"
	"campusfood/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new food order.
// Carries the customer, the vendor, the item snapshots to order, and the
// drop-off details. The total is computed server-side from the snapshots.
//
// Example:
//
//	item, _ := order.NewItem(menuItemID, "Jollof Rice", price, 2)
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, vendorID,
//	    []order.Item{item}, "Moremi Hall, Room 214", "call on arrival",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, deliveryFee)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	vendorID         kernel.UUID
	items            []order.Item
	deliveryLocation string
	deliveryNotes    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates all identifiers, requires at least one item built via
// order.NewItem, and a non-empty delivery location.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	items []order.Item,
	deliveryLocation string,
	deliveryNotes string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		deliveryNotes: deliveryNotes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setVendorID(vendorID),
		orderCommand.setItems(items),
		orderCommand.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorID returns the vendor the order is placed against.
func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Items returns the menu snapshots to order.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// DeliveryLocation returns the free-text drop-off point.
func (c CreateOrderCommand) DeliveryLocation() string {
	return c.deliveryLocation
}

// DeliveryNotes returns optional guidance for the rider.
func (c CreateOrderCommand) DeliveryNotes() string {
	return c.deliveryNotes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveryLocation(deliveryLocation string) error {
	if deliveryLocation == "" {
		return errs.NewValueIsRequiredError("deliveryLocation")
	}

	c.deliveryLocation = deliveryLocation
	return nil
}
