package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"campusfood/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// publishQueueSize bounds the outbound event backlog while the broker
// is slow or unreachable.
const publishQueueSize = 64

// RedisNotifier bridges the change feed over Redis pub/sub so several API
// instances share one feed. Events are published as JSON to one channel
// per subscription key.
//
// Implements both ports.OrderPublisher and ports.OrderSubscriber.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
	queue  chan queuedEvent
}

// queuedEvent is one encoded event waiting for the publish worker.
type queuedEvent struct {
	orderID string
	payload []byte
	keys    []ports.SubscriptionKey
}

// NewRedisNotifier creates a notifier over an existing Redis client and
// starts its publish worker. The worker lives for the process lifetime.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	n := &RedisNotifier{
		client: client,
		logger: logger.With("component", "notifier"),
		queue:  make(chan queuedEvent, publishQueueSize),
	}
	go n.publishLoop()
	return n
}

// channelName maps a subscription key to its Redis pub/sub channel.
func channelName(key ports.SubscriptionKey) string {
	if key.Kind == ports.SubscriptionPool {
		return "orders.pool"
	}
	return fmt.Sprintf("orders.%s.%s", key.Kind, key.ID)
}

// Publish hands the event to the publish worker so a slow broker never
// delays the committed command. The single worker drains the queue in
// enqueue order, which keeps the feed in commit order per order. When
// the queue is full the event is logged and dropped; subscribers recover
// by re-querying their lists.
func (n *RedisNotifier) Publish(_ context.Context, event ports.OrderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("failed to encode order event", "order_id", event.OrderID, "error", err)
		return
	}

	select {
	case n.queue <- queuedEvent{orderID: event.OrderID, payload: payload, keys: eventKeys(event)}:
	default:
		n.logger.Warn("dropping order event, publish queue is full", "order_id", event.OrderID)
	}
}

// publishLoop forwards queued events to Redis one at a time.
func (n *RedisNotifier) publishLoop() {
	ctx := context.Background()
	for queued := range n.queue {
		for _, key := range queued.keys {
			if err := n.client.Publish(ctx, channelName(key), queued.payload).Err(); err != nil {
				n.logger.Warn("failed to publish order event",
					"channel", channelName(key), "order_id", queued.orderID, "error", err)
			}
		}
	}
}

// Subscribe attaches to the key's Redis channel and decodes incoming
// events until Close is called. Undecodable payloads are logged and
// skipped.
func (n *RedisNotifier) Subscribe(ctx context.Context, key ports.SubscriptionKey) (ports.Subscription, error) {
	pubsub := n.client.Subscribe(ctx, channelName(key))

	// force the subscription to be established before returning
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan ports.OrderEvent, subscriptionBuffer),
	}

	go func() {
		defer close(sub.events)
		for msg := range pubsub.Channel() {
			var event ports.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.logger.Warn("skipping undecodable order event", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case sub.events <- event:
			default:
				n.logger.Warn("dropping event for slow subscriber",
					"channel", msg.Channel, "order_id", event.OrderID)
			}
		}
	}()

	return sub, nil
}

// redisSubscription is one attached Redis-backed feed.
type redisSubscription struct {
	pubsub    *redis.PubSub
	events    chan ports.OrderEvent
	closeOnce sync.Once
}

// Events returns the channel the feed's events arrive on.
func (s *redisSubscription) Events() <-chan ports.OrderEvent {
	return s.events
}

// Close detaches from the Redis channel; the events channel closes once
// the reader goroutine drains.
// Safe to call more than once.
func (s *redisSubscription) Close() {
	s.closeOnce.Do(func() {
		_ = s.pubsub.Close()
	})
}
