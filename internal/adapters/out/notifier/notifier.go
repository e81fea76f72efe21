// Package notifier implements the change feed over committed order state
// changes. Two transports are provided: an in-process keyed fan-out for
// single-instance deployments and tests, and a Redis pub/sub bridge for
// running several API instances against one feed.
//
// Delivery is at-least-once and best-effort in both transports. A missed
// event is tolerated because every subscriber can fall back to re-querying
// its order list; the feed is a liveness optimization, not a correctness
// dependency.
package notifier

import (
	"campusfood/internal/core/ports"
)

// eventKeys derives every subscription key an event must reach: the
// order's customer and vendor always, the rider when one is assigned, and
// the shared pool feed when the order entered or left the claimable pool.
func eventKeys(event ports.OrderEvent) []ports.SubscriptionKey {
	keys := []ports.SubscriptionKey{
		{Kind: ports.SubscriptionCustomer, ID: event.CustomerID},
		{Kind: ports.SubscriptionVendor, ID: event.VendorID},
	}
	if event.RiderID != "" {
		keys = append(keys, ports.SubscriptionKey{Kind: ports.SubscriptionRider, ID: event.RiderID})
	}
	if event.EnteredPool || event.LeftPool {
		keys = append(keys, ports.SubscriptionKey{Kind: ports.SubscriptionPool})
	}
	return keys
}
