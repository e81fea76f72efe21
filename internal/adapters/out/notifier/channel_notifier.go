package notifier

import (
	"context"
	"log/slog"
	"sync"

	"campusfood/internal/core/ports"
)

// subscriptionBuffer is how many undelivered events a subscriber may lag
// behind before new events for it are dropped.
const subscriptionBuffer = 16

// ChannelNotifier is an in-process change feed: subscribers hold buffered
// channels keyed by subscription key, and Publish fans events out to every
// matching channel without ever blocking the publisher. A subscriber that
// stops draining loses events, not the publisher.
//
// Implements both ports.OrderPublisher and ports.OrderSubscriber.
type ChannelNotifier struct {
	mu     sync.RWMutex
	subs   map[ports.SubscriptionKey]map[uint64]*channelSubscription
	nextID uint64
	logger *slog.Logger
}

// NewChannelNotifier creates an empty in-process change feed.
func NewChannelNotifier(logger *slog.Logger) *ChannelNotifier {
	return &ChannelNotifier{
		subs:   make(map[ports.SubscriptionKey]map[uint64]*channelSubscription),
		logger: logger.With("component", "notifier"),
	}
}

// Publish fans the event out to every subscription whose key it matches.
// Sends are non-blocking: a full subscriber buffer drops the event for
// that subscriber only.
func (n *ChannelNotifier) Publish(_ context.Context, event ports.OrderEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, key := range eventKeys(event) {
		for _, sub := range n.subs[key] {
			select {
			case sub.events <- event:
			default:
				n.logger.Warn("dropping event for slow subscriber",
					"kind", key.Kind, "subscriber", key.ID, "order_id", event.OrderID)
			}
		}
	}
}

// Subscribe attaches a new feed for the key. The subscription stays live
// until Close is called; the context only bounds the attach itself.
func (n *ChannelNotifier) Subscribe(_ context.Context, key ports.SubscriptionKey) (ports.Subscription, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	sub := &channelSubscription{
		events: make(chan ports.OrderEvent, subscriptionBuffer),
		detach: func() { n.remove(key, id) },
	}

	if n.subs[key] == nil {
		n.subs[key] = make(map[uint64]*channelSubscription)
	}
	n.subs[key][id] = sub

	return sub, nil
}

func (n *ChannelNotifier) remove(key ports.SubscriptionKey, id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.subs[key], id)
	if len(n.subs[key]) == 0 {
		delete(n.subs, key)
	}
}

// channelSubscription is one attached feed.
type channelSubscription struct {
	events    chan ports.OrderEvent
	detach    func()
	closeOnce sync.Once
}

// Events returns the channel the feed's events arrive on.
func (s *channelSubscription) Events() <-chan ports.OrderEvent {
	return s.events
}

// Close detaches the subscription and closes its channel.
// Safe to call more than once.
func (s *channelSubscription) Close() {
	s.closeOnce.Do(func() {
		s.detach()
		close(s.events)
	})
}
