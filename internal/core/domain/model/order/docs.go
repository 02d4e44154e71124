// Package order implements the order aggregate for the storefront.
//
// The package contains:
//   - Order: the aggregate root carrying totals, line items, the current
//     status and the append-only status history
//   - Status: the order lifecycle state machine and its transition policy,
//     including the stable rejection reasons shown to operators
//   - StatusEvent: one immutable audit trail entry
//
// All mutation of an order's status and history flows through
// Order.ChangeStatus, which enforces the transition policy and appends
// exactly one history entry per successful change.
package order
