package order

import (
	"fmt"

	"campusfood/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	pending → confirmed → preparing → ready → assigned → picked_up → in_transit → delivered
//	   │          │           │        │
//	   └──────────┴───────────┴────────┴──> cancelled
//
// delivered and cancelled are terminal. The string values are persisted
// as-is and appear on the wire, so they never change meaning.
type Status string

const (
	// Pending is the initial status when a customer places an order.
	// The vendor has not yet acknowledged it.
	Pending Status = "pending"

	// Confirmed indicates the vendor has accepted the order.
	Confirmed Status = "confirmed"

	// Preparing indicates the vendor is preparing the food.
	Preparing Status = "preparing"

	// Ready indicates the order is packed and waiting for a rider to claim it.
	// Orders in this status with no rider form the claimable pool.
	Ready Status = "ready"

	// Assigned indicates exactly one rider has claimed the delivery.
	Assigned Status = "assigned"

	// PickedUp indicates the rider has collected the order from the vendor.
	PickedUp Status = "picked_up"

	// InTransit indicates the rider is on the way to the customer.
	InTransit Status = "in_transit"

	// Delivered indicates the order reached the customer. Terminal.
	Delivered Status = "delivered"

	// Cancelled indicates the order was abandoned before delivery. Terminal.
	Cancelled Status = "cancelled"
)

// forwardEdges maps each status to its single forward successor.
// Cancellation is handled separately since it branches off every
// non-terminal state.
func forwardEdges() map[Status]Status {
	return map[Status]Status{
		Pending:   Confirmed,
		Confirmed: Preparing,
		Preparing: Ready,
		Ready:     Assigned,
		Assigned:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
	}
}

// validStatuses holds every status accepted from external sources.
func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:   {},
		Confirmed: {},
		Preparing: {},
		Ready:     {},
		Assigned:  {},
		PickedUp:  {},
		InTransit: {},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString converts a raw string into a Status.
// Returns an error for anything outside the defined set. Used when
// reconstructing orders from persistence or parsing client requests.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the Status value belongs to the defined set.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted form of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the forward successor of the status.
// The second return value is false for terminal states.
func (s Status) Next() (Status, bool) {
	next, ok := forwardEdges()[s]
	return next, ok
}

// CanTransitionTo reports whether the edge from s to target exists in the
// transition graph. Forward moves go one step at a time; skips and
// regressions are rejected. Cancellation is reachable from any
// non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if target == Cancelled {
		return !s.IsTerminal()
	}
	return forwardEdges()[s] == target
}

// hasInboundEdge reports whether any transition leads into the status.
// Only pending, the creation status, is unreachable by transition.
func (s Status) hasInboundEdge() bool {
	if s == Cancelled {
		return true
	}
	for _, next := range forwardEdges() {
		if next == s {
			return true
		}
	}
	return false
}

// RequiresRider reports whether orders in this status must have a rider
// attached. The rider reference is non-null exactly in the statuses at or
// past assignment.
func (s Status) RequiresRider() bool {
	switch s {
	case Assigned, PickedUp, InTransit, Delivered:
		return true
	default:
		return false
	}
}

// ValidateCanHaveRider validates the consistency between order status and
// rider assignment: statuses at or past assignment must carry a rider,
// everything else must not.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && !s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !hasRider && s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}
