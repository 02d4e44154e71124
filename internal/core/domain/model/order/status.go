package order

import (
	"errors"
	"fmt"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// Status represents the fulfillment state of a storefront order.
// It implements a state machine with defined transitions so orders follow the
// correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Paid ──┬──> Dispatched ──> Delivered
//	          │           └─────────────────> Delivered
//	          └──> Cancelled
//
// Delivered and Cancelled are terminal: no further transitions are permitted.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout.
	// Pending orders await payment and may still be cancelled.
	Pending

	// Paid indicates payment has settled. A paid order can no longer
	// return to pending or be cancelled; it awaits fulfillment.
	Paid

	// Dispatched indicates the order has been handed to the carrier.
	Dispatched

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before payment.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// Stable rejection reasons surfaced to operators. The server and the local
// pre-check must produce identical strings for the same illegal transition.
const (
	ReasonTerminal          = "cannot modify a delivered or cancelled order"
	ReasonPaidRegression    = "a paid order cannot return to pending or be cancelled"
	ReasonDispatchedCancel  = "a dispatched order cannot be cancelled"
	ReasonInvalidTransition = "invalid status transition"
)

// ErrIllegalTransition is the sentinel for all transition policy violations.
// Use errors.Is to classify and IllegalTransitionError for the reason text.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError reports a transition forbidden by the policy.
// Error() returns the stable human-readable reason, suitable for surfacing
// to an operator verbatim.
type IllegalTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	return e.Reason
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Paid:       "paid",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Paid:       "paid",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// legalTargets is the source of truth for the transition graph.
// The key is the current status; the value lists the statuses it may move to.
// Terminal statuses map to empty sets.
func legalTargets() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Paid, Cancelled},
		Paid:       {Dispatched, Delivered},
		Dispatched: {Delivered},
		Delivered:  {},
		Cancelled:  {},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Paid, Dispatched, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "unknown" for invalid status values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a status name as it appears on the wire.
// Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s Status) IsTerminal() bool {
	targets, ok := legalTargets()[s]
	return ok && len(targets) == 0
}

// NextStatuses returns the statuses s may legally move to.
// Terminal and invalid statuses yield an empty slice.
//
// The result is a fresh copy; callers may not mutate the transition graph.
func (s Status) NextStatuses() []Status {
	targets := legalTargets()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether the transition s -> to is legal.
//
// A transition is legal iff "to" appears in the legal-targets set for s and
// s is not terminal. A same-state transition is never legal: there is
// nothing to apply.
//
// Example:
//
//	order.Pending.CanTransitionTo(order.Paid)      // true
//	order.Paid.CanTransitionTo(order.Cancelled)    // false
//	order.Delivered.CanTransitionTo(order.Pending) // false (terminal)
func (s Status) CanTransitionTo(to Status) bool {
	if s == to {
		return false
	}
	for _, target := range legalTargets()[s] {
		if target == to {
			return true
		}
	}
	return false
}

// RejectionReason produces the stable, human-readable reason the transition
// from -> to is illegal. The reason is part of the operator-facing contract
// and must not be reworded.
//
// Callers are expected to have already established that the transition is
// illegal; for a legal pair the generic reason is returned.
func RejectionReason(from, to Status) string {
	switch {
	case from.IsTerminal():
		return ReasonTerminal
	case from == Paid && (to == Pending || to == Cancelled):
		return ReasonPaidRegression
	case from == Dispatched && to == Cancelled:
		return ReasonDispatchedCancel
	default:
		return ReasonInvalidTransition
	}
}

// TransitionTo validates the transition s -> to and returns the new status.
//
// Returns:
//   - (to, nil) when the transition is legal
//   - (0, *IllegalTransitionError) carrying the stable rejection reason otherwise
//
// This method is used by Order.ChangeStatus to enforce state transitions and
// by the authoritative store to re-validate requests independently of any
// client-side pre-check.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(to) {
		return 0, &IllegalTransitionError{From: s, To: to, Reason: RejectionReason(s, to)}
	}
	return to, nil
}
