package order

import (
	"errors"
	"fmt"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrInvalidTransition is returned when a requested status edge does not
	// exist in the transition graph, or exists but the acting party is not
	// allowed to drive it. Indicates a stale UI or a programming bug.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStaleTransition is returned when the current-status precondition of a
	// transition no longer holds because a concurrent write got there first,
	// or when the order already sits in the requested target, so the request
	// is a duplicate. The caller should refetch the order and surface a
	// conflict, not an error.
	ErrStaleTransition = errors.New("order status changed concurrently")

	// ErrAlreadyClaimed is returned when a rider claim loses the race: another
	// rider took the order, or it moved out of the claimable pool. The caller
	// should refresh its available-deliveries list, not retry.
	ErrAlreadyClaimed = errors.New("order is no longer available to claim")
)

// Order is the aggregate root for a customer's purchase from a vendor.
// It owns the status state machine, the rider assignment rules, and the
// immutable item snapshots taken at creation time.
//
// Order follows these invariants:
//   - at least one item snapshot, each with a positive quantity
//   - total amount equals the sum of line totals plus the delivery fee,
//     fixed at creation and never recomputed from live menu state
//   - the rider reference is set exactly when the status is at or past
//     assignment, and the confirmation code travels with it
//   - status changes go through TransitionTo or AssignRider only
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the student who placed the order
	customerID kernel.UUID

	// vendorID is the vendor the order was placed against
	vendorID kernel.UUID

	// riderID is the assigned rider's user ID (nil until claimed)
	riderID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// deliveryLocation is the free-text drop-off point on campus
	deliveryLocation string

	// deliveryNotes is optional guidance for the rider
	deliveryNotes string

	// items are the menu snapshots taken when the order was placed
	items []Item

	// deliveryFee is the flat fee added to the item subtotal
	deliveryFee kernel.Money

	// totalAmount is the server-computed order total
	totalAmount kernel.Money

	// confirmationCode is set when a rider claims the order
	confirmationCode *ConfirmationCode

	// createdAt is when the order was placed
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a pending Order with validation. This is the only way to
// place an order, ensuring all invariants hold from the start.
//
// The total amount is computed here from the item snapshots and the delivery
// fee; a client-supplied total is never trusted. The order starts in Pending
// status with no rider assigned.
//
// Returns a validation error if any identifier is invalid, the item list is
// empty, any item was not built via NewItem, or the delivery location is
// blank.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	items []Item,
	deliveryLocation string,
	deliveryNotes string,
	deliveryFee kernel.Money,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		deliveryNotes: deliveryNotes,
		deliveryFee:   deliveryFee,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setItems(items),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	o.totalAmount = computeTotal(o.items, o.deliveryFee)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without rerunning the
// creation-time rules. It still validates structural consistency, most
// importantly that the rider reference matches the status.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	deliveryLocation string,
	deliveryNotes string,
	items []Item,
	deliveryFee kernel.Money,
	totalAmount kernel.Money,
	confirmationCode *ConfirmationCode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		riderID:          riderID,
		deliveryNotes:    deliveryNotes,
		deliveryFee:      deliveryFee,
		totalAmount:      totalAmount,
		confirmationCode: confirmationCode,
		createdAt:        createdAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setItems(items),
		o.setDeliveryLocation(deliveryLocation),
		status.Validate(),
		status.ValidateCanHaveRider(riderID != nil),
	); err != nil {
		return nil, err
	}
	o.status = status

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		if confirmationCode == nil {
			return nil, errs.NewValueIsRequiredError("confirmationCode")
		}
		if err := confirmationCode.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// VendorID returns the vendor the order was placed against.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// Rider returns the assigned rider's user ID, or nil before assignment.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryLocation returns the free-text drop-off point.
func (o *Order) DeliveryLocation() string {
	return o.deliveryLocation
}

// DeliveryNotes returns the optional rider guidance.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// Items returns a copy of the order's item snapshots.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryFee returns the flat delivery fee.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// TotalAmount returns the server-computed order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ConfirmationCode returns the delivery code, or nil before assignment.
func (o *Order) ConfirmationCode() *ConfirmationCode {
	return o.confirmationCode
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsClaimable reports whether the order sits in the rider pool:
// ready and unassigned.
func (o *Order) IsClaimable() bool {
	return o.status == Ready && o.riderID == nil
}

// TransitionTo moves the order to the target status on behalf of an actor.
//
// The move must be an existing edge in the transition graph, and the actor
// must be allowed to drive that edge:
//   - the vendor's owning user drives confirmed, preparing, ready, and may
//     cancel while the order is not yet assigned
//   - the assigned rider drives picked_up, in_transit, delivered
//   - the customer may cancel only while the order is still pending
//
// Assignment is excluded: a ready order is claimed through AssignRider so
// the at-most-one-rider rule is enforced in one place.
//
// Returns ErrInvalidTransition when the edge does not exist or the actor is
// not allowed to drive it. A duplicate request, where the order already sits
// in a target some transition leads into, reports ErrStaleTransition: the
// move plausibly applied already and the caller should refetch, not treat
// its UI as broken.
func (o *Order) TransitionTo(target Status, role ActorRole, actorID kernel.UUID, vendorOwnerID kernel.UUID) error {
	if err := errors.Join(
		target.Validate(),
		role.Validate(),
		actorID.Validate(),
	); err != nil {
		return err
	}

	if target == o.status && target.hasInboundEdge() {
		return fmt.Errorf("%w: order is already %s", ErrStaleTransition, o.status)
	}

	if !o.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: no edge from %s to %s", ErrInvalidTransition, o.status, target)
	}

	if err := o.authorizeTransition(target, role, actorID, vendorOwnerID); err != nil {
		return err
	}

	if target == Assigned {
		return fmt.Errorf("%w: assignment goes through a rider claim", ErrInvalidTransition)
	}

	o.status = target
	return nil
}

// AssignRider claims the order for a rider and attaches the delivery
// confirmation code. Only a ready, unassigned order can be claimed; anything
// else fails with ErrAlreadyClaimed so the caller refreshes its pool view.
//
// The persistence layer must commit this change as a single conditional
// write keyed on the same precondition, so that concurrent claims resolve
// to exactly one winner.
func (o *Order) AssignRider(riderID kernel.UUID, code ConfirmationCode) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := code.Validate(); err != nil {
		return err
	}

	if !o.IsClaimable() {
		return fmt.Errorf("%w: order is %s", ErrAlreadyClaimed, o.status)
	}

	o.status = Assigned
	o.riderID = &riderID
	o.confirmationCode = &code
	return nil
}

// Expire cancels a pending order on behalf of the system, with no acting
// party. Used by the background sweep for orders the vendor never picked up.
func (o *Order) Expire() error {
	if o.status != Pending {
		return fmt.Errorf("%w: only a pending order can expire, order is %s", ErrInvalidTransition, o.status)
	}
	o.status = Cancelled
	return nil
}

// authorizeTransition checks the role/state matrix for the requested edge.
// Failures report ErrInvalidTransition: for the acting party, the edge does
// not exist.
func (o *Order) authorizeTransition(target Status, role ActorRole, actorID kernel.UUID, vendorOwnerID kernel.UUID) error {
	switch target {
	case Confirmed, Preparing, Ready:
		if role == RoleVendor && actorID.IsEqual(vendorOwnerID) {
			return nil
		}

	case Assigned:
		if role == RoleRider && o.riderID == nil {
			return nil
		}

	case PickedUp, InTransit, Delivered:
		if role == RoleRider && o.riderID != nil && actorID.IsEqual(*o.riderID) {
			return nil
		}

	case Cancelled:
		if role == RoleCustomer && actorID.IsEqual(o.customerID) && o.status == Pending {
			return nil
		}
		if role == RoleVendor && actorID.IsEqual(vendorOwnerID) && !o.status.RequiresRider() {
			return nil
		}
	}

	return fmt.Errorf("%w: %s may not move order from %s to %s", ErrInvalidTransition, role, o.status, target)
}

// computeTotal sums the item line totals and adds the delivery fee.
func computeTotal(items []Item, deliveryFee kernel.Money) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total.Add(deliveryFee)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.vendorID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("deliveryLocation")
	}
	o.deliveryLocation = location
	return nil
}
