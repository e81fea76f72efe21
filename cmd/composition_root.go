package cmd

import (
	"fmt"
	"log/slog"

	"campusfood/internal/adapters/out/notifier"
	"campusfood/internal/adapters/out/postgres"
	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The notifier
// transport is chosen by configuration: Redis when REDIS_URL is set, the
// in-process feed otherwise.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	publisher   ports.OrderPublisher
	subscriber  ports.OrderSubscriber
	deliveryFee kernel.Money
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	deliveryFee, err := kernel.NewMoneyFromString(config.DeliveryFee)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid delivery fee %q: %w", config.DeliveryFee, err)
	}

	root := CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		deliveryFee: deliveryFee,
	}

	if config.RedisURL != "" {
		options, parseErr := redis.ParseURL(config.RedisURL)
		if parseErr != nil {
			return CompositionRoot{}, fmt.Errorf("invalid redis URL: %w", parseErr)
		}
		feed := notifier.NewRedisNotifier(redis.NewClient(options), logger)
		root.publisher, root.subscriber = feed, feed
	} else {
		feed := notifier.NewChannelNotifier(logger)
		root.publisher, root.subscriber = feed, feed
	}

	return root, nil
}

// Subscriber returns the change feed consumers attach to.
func (c *CompositionRoot) Subscriber() ports.OrderSubscriber {
	return c.subscriber
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderVendorUoWFactory = FuncOrderVendorUoWFactory(func() commands.OrderVendorUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.deliveryFee)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDeliveriesQueryHandler() queries.GetAvailableDeliveriesQueryHandler {
	return queries.NewGetAvailableDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderVendorUoWFactory func() commands.OrderVendorUoW

func (f FuncOrderVendorUoWFactory) Create() commands.OrderVendorUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
