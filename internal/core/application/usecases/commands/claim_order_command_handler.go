package commands

import (
	"context"

	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/ports"
)

// ClaimOrderCommandHandler resolves which rider gets a ready order.
// The decisive step is the repository's Claim call: a single conditional
// write that only matches a row still in ready status with no rider. Two
// riders racing for the same order therefore resolve to exactly one winner
// at the database, regardless of what each one read beforehand.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
}

// NewClaimOrderCommandHandler creates a handler for rider claims.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for change notifications.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one claim attempt.
// Generates the delivery confirmation code, applies the assignment to the
// aggregate, and persists it through the conditional write. A lost race
// surfaces as order.ErrAlreadyClaimed; the caller should refresh its
// available-deliveries view rather than retry.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	code, err := order.NewConfirmationCode()
	if err != nil {
		return err
	}

	previous := aggregate.Status()
	if err = aggregate.AssignRider(cmd.RiderID(), code); err != nil {
		return err
	}

	if err = orderRepo.Claim(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.NewOrderEvent(aggregate, previous))
	return nil
}
