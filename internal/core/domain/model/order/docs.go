// Package order contains the Order aggregate and its lifecycle state machine.
//
// An Order is placed by a customer against a vendor, moves through a fixed
// sequence of statuses driven by the vendor and an assigned rider, and ends
// in a terminal delivered or cancelled state. The aggregate owns every rule
// about which transitions exist, which actor may drive each edge, and when a
// rider may be attached.
//
// Key invariants enforced here:
//   - an order carries at least one immutable item snapshot
//   - the total amount equals the sum of line totals plus the delivery fee
//   - the rider reference is set if and only if the status is at or past
//     assignment
//   - statuses only move forward along the transition graph, or sideways
//     into cancelled from a non-terminal state
package order
