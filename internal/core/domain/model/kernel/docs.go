// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides building blocks that carry their own validation rules:
//   - UUID: identity for aggregates and entities
//   - Money: decimal monetary amounts safe for currency arithmetic
//
// Value objects in this package are immutable. They are constructed through
// factory functions that validate input, so any instance in circulation is
// known to be valid.
package kernel
