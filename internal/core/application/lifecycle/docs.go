// Package lifecycle implements the operator-facing status change machinery
// for orders.
//
// The package contains:
//   - Coordinator: orchestrates one status change at a time per order,
//     pre-validating against the transition policy, deferring to the
//     authoritative store, and reconciling confirmed results into its local
//     cache. Exposes per-order signals (in-flight, last error, one-shot
//     success).
//   - Workflow: the two-step confirm-or-cancel protocol staged in front of
//     the coordinator, preserving the operator's audit note across failed
//     attempts.
//   - TransitionError: the attempt failure taxonomy (policy rejection,
//     server rejection, transport failure, concurrent attempt rejected).
//
// The coordinator's cache is the single piece of shared mutable state; all
// writes to an order's status and history flow through RequestStatusChange.
package lifecycle
