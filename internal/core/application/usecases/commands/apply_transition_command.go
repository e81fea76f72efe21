package commands

import (
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents a request to move an order to a new
// status on behalf of an acting party. The acting party is identified by
// its user ID and the role it acts in; authorization against the order is
// the aggregate's responsibility.
//
// Assignment is not reachable through this command: riders claim ready
// orders via ClaimOrderCommand so the one-winner rule holds.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(orderID, order.Confirmed, order.RoleVendor, vendorOwnerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewApplyTransitionCommandHandler(uowFactory, publisher)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the edge does not exist or the actor may not drive it
//	case errors.Is(err, order.ErrStaleTransition):
//	    // a concurrent write got there first; refetch and retry
//	}
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	role    order.ActorRole
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to drive one status change.
// Validates the order ID, the target status, the actor role, and the
// actor's user ID.
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	role order.ActorRole,
	actorID kernel.UUID,
) (ApplyTransitionCommand, error) {
	transitionCommand := ApplyTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setRole(role),
		transitionCommand.setActorID(actorID),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyTransitionCommandIsNotConstructed if validation fails.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ApplyTransitionCommand) Target() order.Status {
	return c.target
}

// Role returns the role the actor acts in.
func (c ApplyTransitionCommand) Role() order.ActorRole {
	return c.role
}

// ActorID returns the acting party's user ID.
func (c ApplyTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ApplyTransitionCommand) setRole(role order.ActorRole) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *ApplyTransitionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
