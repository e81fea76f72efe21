package ports

import (
	"context"
	"time"

	"campusfood/internal/core/domain/model/order"
)

// SubscriptionKind identifies the audience of a change feed.
type SubscriptionKind string

const (
	// SubscriptionCustomer streams changes to orders placed by one customer.
	SubscriptionCustomer SubscriptionKind = "customer"
	// SubscriptionVendor streams changes to orders of one vendor.
	SubscriptionVendor SubscriptionKind = "vendor"
	// SubscriptionRider streams changes to orders assigned to one rider.
	SubscriptionRider SubscriptionKind = "rider"
	// SubscriptionPool streams the shared pool of claimable orders.
	// Pool events carry no subscriber ID.
	SubscriptionPool SubscriptionKind = "pool"
)

// SubscriptionKey addresses one change feed. For the pool kind ID is empty.
type SubscriptionKey struct {
	Kind SubscriptionKind
	ID   string
}

// OrderEvent describes one committed order state change. Events are
// delivered at least once and in commit order per order; consumers must
// tolerate duplicates.
type OrderEvent struct {
	OrderID        string       `json:"order_id"`
	CustomerID     string       `json:"customer_id"`
	VendorID       string       `json:"vendor_id"`
	RiderID        string       `json:"rider_id,omitempty"`
	Status         order.Status `json:"status"`
	PreviousStatus order.Status `json:"previous_status,omitempty"`
	EnteredPool    bool         `json:"entered_pool,omitempty"`
	LeftPool       bool         `json:"left_pool,omitempty"`
	OccurredAt     time.Time    `json:"occurred_at"`
}

// NewOrderEvent builds the event for a transition of aggregate from the
// previous status to its current one. Pool membership deltas are derived
// from the statuses: an order enters the pool when it becomes claimable
// and leaves when it stops being ready-and-unclaimed.
func NewOrderEvent(aggregate *order.Order, previous order.Status) OrderEvent {
	event := OrderEvent{
		OrderID:        aggregate.ID().String(),
		CustomerID:     aggregate.CustomerID().String(),
		VendorID:       aggregate.VendorID().String(),
		Status:         aggregate.Status(),
		PreviousStatus: previous,
		OccurredAt:     time.Now().UTC(),
	}
	if riderID := aggregate.Rider(); riderID != nil {
		event.RiderID = riderID.String()
	}

	wasInPool := previous == order.Ready
	inPool := aggregate.IsClaimable()
	event.EnteredPool = inPool && !wasInPool
	event.LeftPool = wasInPool && !inPool

	return event
}

// OrderPublisher is the outbound port for announcing committed changes.
// Publish must not block the calling command: slow or absent consumers
// never delay a state change.
type OrderPublisher interface {
	Publish(ctx context.Context, event OrderEvent)
}

// Subscription is one live change feed. The channel is closed after Close.
type Subscription interface {
	// Events returns the channel the feed's events arrive on.
	Events() <-chan OrderEvent

	// Close detaches the subscription and releases its resources.
	// Safe to call more than once.
	Close()
}

// OrderSubscriber is the inbound side of the notifier: consumers attach
// to a key and receive every event relevant to it from that point on.
type OrderSubscriber interface {
	Subscribe(ctx context.Context, key SubscriptionKey) (Subscription, error)
}
