package order

import (
	"errors"
	"fmt"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a snapshot of a menu line at the moment the order was placed.
// Name and unit price are copied from the menu catalog so historical orders
// stay accurate even if the vendor later edits or deletes the menu item.
// Items are immutable once the order exists.
type Item struct {
	// menuItemID references the catalog entry the snapshot was taken from
	menuItemID kernel.UUID

	// name is the item name at order time
	name string

	// unitPrice is the price per unit at order time
	unitPrice kernel.Money

	// quantity is how many units were ordered (always positive)
	quantity int

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates an order line snapshot with validation.
// The menu item ID must be valid, the name non-empty, and the quantity
// positive.
func NewItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.unitPrice = unitPrice
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// MenuItemID returns the catalog reference of the snapshot.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the item name at order time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price per unit at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
