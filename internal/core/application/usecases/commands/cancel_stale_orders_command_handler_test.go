package commands_test

import (
	"testing"
	"time"

	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelStaleOrdersCommandHandler_Handle_ExpiresPendingOrders(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelStaleOrdersCommand(30 * time.Minute)

	first := orderAt(t, order.Pending, kernel.NewUUID(), kernel.NewUUID(), nil)
	second := orderAt(t, order.Pending, kernel.NewUUID(), kernel.NewUUID(), nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListPendingOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{first, second}, nil).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, first, order.Pending).Return(nil).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, second, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Status == order.Cancelled && e.PreviousStatus == order.Pending
	})).Twice()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, first.Status())
	assert.Equal(t, order.Cancelled, second.Status())
	publisher.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_SkipsConcurrentlyConfirmed(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelStaleOrdersCommand(30 * time.Minute)

	contested := orderAt(t, order.Pending, kernel.NewUUID(), kernel.NewUUID(), nil)
	stale := orderAt(t, order.Pending, kernel.NewUUID(), kernel.NewUUID(), nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListPendingOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{contested, stale}, nil).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, contested, order.Pending).
			Return(order.ErrStaleTransition).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, stale, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.OrderID == stale.ID().String()
	})).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelStaleOrdersCommand(30 * time.Minute)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListPendingOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPublisher)
	h := commands.NewCancelStaleOrdersCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
