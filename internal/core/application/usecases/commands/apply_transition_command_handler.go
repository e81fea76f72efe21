package commands

import (
	"context"
	"errors"

	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/domain/model/rider"
	"campusfood/internal/core/ports"
	"campusfood/internal/pkg/errs"
)

// ApplyTransitionCommandHandler drives the order status state machine.
// Loads the order and its vendor, asks the aggregate to perform the move,
// and persists the new status with the previous status as a write
// precondition so concurrent transitions cannot overwrite each other.
//
// Completing a delivery also bumps the rider's delivery counter, so the
// handler works over the full unit of work.
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderPublisher
}

// NewApplyTransitionCommandHandler creates a handler for status transitions.
// Requires a UoWFactory for coordinating updates across orders and rider
// profiles, and a publisher for change notifications.
func NewApplyTransitionCommandHandler(uowFactory UoWFactory, publisher ports.OrderPublisher) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one status transition.
// The persisted write carries the pre-transition status as a precondition:
// if another writer moved the order first, the update matches zero rows and
// the handler returns order.ErrStaleTransition without changing anything.
// A transition to "delivered" additionally increments the assigned rider's
// total-deliveries counter in the same transaction.
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
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

	seller, err := uow.VendorRepository().Get(ctx, aggregate.VendorID())
	if err != nil {
		return err
	}

	previous := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.Role(), cmd.ActorID(), seller.OwnerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateStatus(ctx, aggregate, previous); err != nil {
		return err
	}

	if cmd.Target() == order.Delivered {
		if err = h.recordDelivery(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.NewOrderEvent(aggregate, previous))
	return nil
}

// recordDelivery bumps the total-deliveries counter of the rider who
// completed the order, creating the profile on first delivery.
func (h ApplyTransitionCommandHandler) recordDelivery(ctx context.Context, uow UoW, aggregate *order.Order) error {
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
		profile.RecordDelivery()
		return riderRepo.Add(ctx, profile)
	}
	if err != nil {
		return err
	}

	profile.RecordDelivery()
	return riderRepo.Update(ctx, profile)
}
