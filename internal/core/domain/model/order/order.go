package order

import (
	"errors"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrHistoryMismatch is returned when a persisted order's status does not
	// equal the status of the most recent entry in its history, or is not
	// Pending when the history is empty.
	ErrHistoryMismatch = errors.New("order status does not match the latest history entry")
)

// Order is the aggregate root for a placed purchase. It owns the order's
// identity, monetary totals, line items, current status and the append-only
// status history.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier
//   - Must carry at least one line item
//   - Status transitions follow the Status state machine
//   - status always equals the status of the most recent history entry
//   - History is append-only; entries are never mutated or reordered
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; all mutation of
// status and history flows through ChangeStatus.
type Order struct {
	id      kernel.UUID
	totals  Totals
	items   []LineItem
	status  Status
	history []StatusEvent

	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending status with a single
// system-actor creation event in its history. This is the checkout boundary:
// everything upstream of it (cart, identity, payment capture) is out of scope.
//
// Example:
//
//	items := []order.LineItem{item}
//	totals, _ := order.NewTotals(subtotal, shipping, tax, discount)
//	o, err := order.NewOrder(kernel.NewUUID(), items, totals, time.Now())
func NewOrder(id kernel.UUID, items []LineItem, totals Totals, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totals = totals
	o.history = []StatusEvent{newCreationEvent(Pending, createdAt)}
	return o, nil
}

// RestoreOrder rebuilds an order from persistence without generating new
// history. It verifies the current status matches the most recent history
// entry, or Pending when the history is empty; a mismatch means the stored
// record is corrupt.
func RestoreOrder(id kernel.UUID, items []LineItem, totals Totals, status Status, history []StatusEvent) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		if status != Pending {
			return nil, ErrHistoryMismatch
		}
	} else if history[len(history)-1].Status != status {
		return nil, ErrHistoryMismatch
	}

	o.totals = totals
	o.status = status
	o.history = make([]StatusEvent, len(history))
	copy(o.history, history)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
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

// Totals returns the monetary breakdown of the order.
func (o *Order) Totals() Totals {
	return o.totals
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history, oldest first.
// The copy keeps callers from mutating the audit trail.
func (o *Order) History() []StatusEvent {
	history := make([]StatusEvent, len(o.history))
	copy(history, o.history)
	return history
}

// LastEvent returns the most recent history entry.
// The second return value is false when the history is empty.
func (o *Order) LastEvent() (StatusEvent, bool) {
	if len(o.history) == 0 {
		return StatusEvent{}, false
	}
	return o.history[len(o.history)-1], true
}

// ChangeStatus transitions the order to a new status and appends exactly one
// history entry recording the change.
//
// The transition is validated against the state machine; an illegal request
// returns *IllegalTransitionError with the stable rejection reason and leaves
// the order untouched. Event timestamps are kept monotonically non-decreasing
// even if the supplied time runs behind the last entry.
//
// Example:
//
//	err := o.ChangeStatus(order.Paid, "card settled", "admin@shop", time.Now())
//	if errors.Is(err, order.ErrIllegalTransition) {
//	    // surface the reason to the operator
//	}
func (o *Order) ChangeStatus(to Status, note, actor string, at time.Time) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	if last, ok := o.LastEvent(); ok && at.Before(last.ChangedAt) {
		at = last.ChangedAt
	}

	previous := o.status
	o.history = append(o.history, StatusEvent{
		Status:         newStatus,
		PreviousStatus: &previous,
		ChangedAt:      at,
		Note:           note,
		Actor:          actor,
	})
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
