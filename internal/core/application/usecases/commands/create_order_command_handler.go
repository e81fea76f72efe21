package commands

import (
	"context"
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/ports"
	"campusfood/internal/pkg/errs"
)

// ErrVendorIsNotAcceptingOrders is returned when the target vendor exists
// but has been deactivated and cannot receive new orders.
var ErrVendorIsNotAcceptingOrders = errors.New("vendor is not accepting orders")

// CreateOrderCommandHandler handles the business logic for placing an order.
// Verifies the vendor is active, computes the total from the item snapshots
// plus the flat delivery fee, and persists the order in "pending" status.
//
// Example:
//
//	fee, _ := kernel.NewMoneyFromString("100")
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, fee)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now pending and visible to the vendor
type CreateOrderCommandHandler struct {
	uowFactory  OrderVendorUoWFactory
	publisher   ports.OrderPublisher
	deliveryFee kernel.Money
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderVendorUoWFactory for transactional persistence, a
// publisher for change notifications, and the flat delivery fee to apply.
func NewCreateOrderCommandHandler(
	uowFactory OrderVendorUoWFactory,
	publisher ports.OrderPublisher,
	deliveryFee kernel.Money,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		deliveryFee: deliveryFee,
	}
}

// Handle processes the order placement command.
// Loads the vendor to confirm it exists and is active, builds the aggregate
// in "pending" status, and persists it within a transaction. On success a
// change event is published for the customer's and vendor's feeds.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	seller, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotFoundErrorWithCause("vendorID", cmd.VendorID(), err)
	}
	if err != nil {
		return err
	}
	if !seller.IsActive() {
		return ErrVendorIsNotAcceptingOrders
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.VendorID(),
		cmd.Items(),
		cmd.DeliveryLocation(),
		cmd.DeliveryNotes(),
		h.deliveryFee,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.NewOrderEvent(aggregate, ""))
	return nil
}
