package commands

import (
	"context"
	"errors"
	"time"

	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/ports"
)

// CancelStaleOrdersCommandHandler expires pending orders the vendor never
// acted on. Each expiry is a precondition-checked write on "pending", so an
// order the vendor confirms mid-sweep is left alone.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
}

// NewCancelStaleOrdersCommandHandler creates a handler for the expiry sweep.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for change notifications.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one sweep pass.
// Loads pending orders older than the window and cancels each one. An order
// that changed status concurrently is skipped; everything else is committed
// together and announced to the affected feeds.
func (h CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
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
	cutoff := time.Now().UTC().Add(-cmd.MaxAge())
	stale, err := orderRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	events := make([]ports.OrderEvent, 0, len(stale))
	for _, aggregate := range stale {
		previous := aggregate.Status()
		if err = aggregate.Expire(); err != nil {
			return err
		}

		err = orderRepo.UpdateStatus(ctx, aggregate, previous)
		if errors.Is(err, order.ErrStaleTransition) {
			continue
		}
		if err != nil {
			return err
		}

		events = append(events, ports.NewOrderEvent(aggregate, previous))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range events {
		h.publisher.Publish(ctx, event)
	}
	return nil
}
