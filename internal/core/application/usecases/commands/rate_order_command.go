package commands

import (
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/errs"
	"campusfood/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

const (
	minReview = 1
	maxReview = 5
)

// RateOrderCommand represents a customer's review of a delivered order.
// The vendor rating is required; the rider rating is optional and zero
// means "not rated".
//
// Example:
//
//	cmd, err := NewRateOrderCommand(orderID, customerID, 5, 4)
//	if err != nil {
//	    return err
//	}
//	handler := NewRateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to record review: %w", err)
//	}
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	vendorRating int
	riderRating  int

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to review a delivered order.
// Ratings are 1 to 5; a rider rating of 0 skips the rider review.
func NewRateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	vendorRating int,
	riderRating int,
) (RateOrderCommand, error) {
	rateCommand := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rateCommand.setOrderID(orderID),
		rateCommand.setCustomerID(customerID),
		rateCommand.setVendorRating(vendorRating),
		rateCommand.setRiderRating(riderRating),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return rateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRateOrderCommandIsNotConstructed if validation fails.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the order being reviewed.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the reviewing customer.
func (c RateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorRating returns the vendor review value.
func (c RateOrderCommand) VendorRating() int {
	return c.vendorRating
}

// RiderRating returns the rider review value, 0 when the rider was not rated.
func (c RateOrderCommand) RiderRating() int {
	return c.riderRating
}

func (c *RateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RateOrderCommand) setVendorRating(vendorRating int) error {
	if vendorRating < minReview || vendorRating > maxReview {
		return errs.NewValueIsOutOfRangeError("vendorRating", vendorRating, minReview, maxReview)
	}

	c.vendorRating = vendorRating
	return nil
}

func (c *RateOrderCommand) setRiderRating(riderRating int) error {
	if riderRating != 0 && (riderRating < minReview || riderRating > maxReview) {
		return errs.NewValueIsOutOfRangeError("riderRating", riderRating, minReview, maxReview)
	}

	c.riderRating = riderRating
	return nil
}
