package order

import (
	"fmt"

	"campusfood/internal/pkg/errs"
)

// ActorRole identifies which side of the marketplace an actor acts from.
// Identity and role resolution happen outside the core; the role is passed
// explicitly into every transition so authorization stays testable.
type ActorRole string

const (
	// RoleCustomer is the student who placed the order.
	RoleCustomer ActorRole = "customer"

	// RoleVendor is the user owning the vendor the order was placed against.
	RoleVendor ActorRole = "vendor"

	// RoleRider is a delivery rider.
	RoleRider ActorRole = "rider"
)

// ActorRoleFromString converts a raw string into an ActorRole.
func ActorRoleFromString(s string) (ActorRole, error) {
	role := ActorRole(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role belongs to the defined set.
func (r ActorRole) Validate() error {
	switch r {
	case RoleCustomer, RoleVendor, RoleRider:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actorRole", fmt.Errorf("%q is not a valid actor role", string(r)))
	}
}

// String returns the persisted form of the role.
func (r ActorRole) String() string {
	return string(r)
}
