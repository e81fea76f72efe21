package commands

import (
	"context"
	"errors"
	"fmt"

	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/domain/model/rider"
	"campusfood/internal/pkg/errs"
)

var (
	// ErrOrderIsNotDelivered is returned when reviewing an order that has
	// not completed delivery.
	ErrOrderIsNotDelivered = errors.New("only a delivered order can be rated")

	// ErrNotOrderCustomer is returned when someone other than the order's
	// customer attempts to review it.
	ErrNotOrderCustomer = errors.New("only the order's customer can rate it")
)

// RateOrderCommandHandler folds a customer review into the vendor's and,
// optionally, the rider's running average rating. Only the customer who
// placed the order may review it, and only after delivery.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateOrderCommandHandler creates a handler for order reviews.
// Requires a UoWFactory for coordinating updates across vendor and rider
// rating aggregates.
func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one review.
// Verifies the order is delivered and the reviewer is its customer, then
// updates the vendor rating and, when requested, the rider rating in one
// transaction.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() != order.Delivered {
		return fmt.Errorf("%w: order is %s", ErrOrderIsNotDelivered, aggregate.Status())
	}
	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return ErrNotOrderCustomer
	}

	vendorRepo := uow.VendorRepository()
	seller, err := vendorRepo.Get(ctx, aggregate.VendorID())
	if err != nil {
		return err
	}
	if err = seller.RecordRating(cmd.VendorRating()); err != nil {
		return err
	}
	if err = vendorRepo.Update(ctx, seller); err != nil {
		return err
	}

	if cmd.RiderRating() != 0 {
		if err = h.rateRider(ctx, uow, aggregate, cmd.RiderRating()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// rateRider folds the review into the delivering rider's profile, creating
// the profile if this is the first feedback recorded for them.
func (h RateOrderCommandHandler) rateRider(ctx context.Context, uow UoW, aggregate *order.Order, value int) error {
	riderID := aggregate.Rider()
	if riderID == nil {
		return errs.NewValueIsRequiredError("riderID")
	}

	riderRepo := uow.RiderRepository()
	profile, err := riderRepo.Get(ctx, *riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		if profile, err = rider.NewRiderProfile(*riderID); err != nil {
			return err
		}
		if err = profile.RecordRating(value); err != nil {
			return err
		}
		return riderRepo.Add(ctx, profile)
	}
	if err != nil {
		return err
	}

	if err = profile.RecordRating(value); err != nil {
		return err
	}
	return riderRepo.Update(ctx, profile)
}
