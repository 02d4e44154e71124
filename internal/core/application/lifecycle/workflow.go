package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
)

// DefaultSuccessDisplayWindow is how long a confirmed change stays visible
// before the success signal auto-expires.
const DefaultSuccessDisplayWindow = 2 * time.Second

var (
	// ErrOrderNotLoaded is returned when the workflow's order is not in the
	// coordinator's cache. Load the order before driving the workflow.
	ErrOrderNotLoaded = errors.New("order is not loaded")

	// ErrNoAttemptToConfirm is returned by ConfirmAttempt or CancelAttempt
	// when no attempt is awaiting confirmation.
	ErrNoAttemptToConfirm = errors.New("no status change attempt is awaiting confirmation")

	// ErrAttemptAlreadyStaged is returned by Begin while a previous attempt
	// is still awaiting confirmation or submitting.
	ErrAttemptAlreadyStaged = errors.New("a status change attempt is already staged")

	// ErrSameStatus is returned when the requested target equals the
	// order's current status: there is nothing to apply.
	ErrSameStatus = errors.New("order is already in the requested status")

	// ErrOrderIsTerminal is returned when the loaded order is delivered or
	// cancelled: no target statuses are offered at all.
	ErrOrderIsTerminal = errors.New("no status changes are available for this order")
)

// WorkflowState is the confirmation protocol's position.
type WorkflowState int

const (
	// Idle: no attempt staged.
	Idle WorkflowState = iota

	// AwaitingConfirmation: a target status and optional note are staged;
	// the operator must confirm or cancel.
	AwaitingConfirmation

	// Submitting: the attempt has been confirmed and handed to the
	// coordinator; its outcome is pending.
	Submitting
)

// String returns the state's name for logs.
func (s WorkflowState) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Workflow is the two-step confirmation protocol guarding status changes for
// one loaded order. It prevents silent irreversible transitions: every
// change is staged with an optional audit note, explicitly confirmed, and on
// failure returns to the confirmation step with the note still in place so
// the operator can retry without retyping.
//
// The staged attempt is ephemeral: it is consumed by one confirm and
// discarded on success, failure or cancel.
//
// Example:
//
//	w := lifecycle.NewWorkflow(coordinator, orderID, "admin@shop", 0)
//	if err := w.Begin(order.Cancelled, "customer request"); err != nil {
//	    return err
//	}
//	if _, err := w.ConfirmAttempt(ctx); err != nil {
//	    // w.LastError() holds the reason, w.Note() is preserved
//	}
type Workflow struct {
	coordinator *Coordinator
	orderID     kernel.UUID
	actor       string

	successWindow time.Duration

	mu           sync.Mutex
	state        WorkflowState
	toStatus     order.Status
	note         string
	lastError    *TransitionError
	successTimer *time.Timer
}

// NewWorkflow creates a confirmation workflow for one order.
// A successWindow of zero selects DefaultSuccessDisplayWindow.
func NewWorkflow(coordinator *Coordinator, orderID kernel.UUID, actor string, successWindow time.Duration) *Workflow {
	if successWindow <= 0 {
		successWindow = DefaultSuccessDisplayWindow
	}
	return &Workflow{
		coordinator:   coordinator,
		orderID:       orderID,
		actor:         actor,
		successWindow: successWindow,
	}
}

// State returns the workflow's current protocol position.
func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Target returns the staged target status; meaningful outside Idle.
func (w *Workflow) Target() order.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.toStatus
}

// Note returns the staged audit note. Preserved across failed attempts so
// the operator never has to retype it.
func (w *Workflow) Note() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.note
}

// LastError returns the failure of the most recent confirmed attempt, or nil.
func (w *Workflow) LastError() *TransitionError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// AvailableTargets lists the statuses the loaded order may legally move to.
// For a terminal order the list is empty: the change-status affordance is
// absent entirely, not disabled with an error on click.
func (w *Workflow) AvailableTargets() []order.Status {
	cached, ok := w.coordinator.CachedOrder(w.orderID)
	if !ok {
		return nil
	}
	return cached.Status().NextStatuses()
}

// Begin stages a status change attempt and moves to AwaitingConfirmation.
//
// Requires the order to be loaded and non-terminal, the workflow to be Idle,
// and a target different from the current status. The note is optional.
func (w *Workflow) Begin(to order.Status, note string) error {
	cached, ok := w.coordinator.CachedOrder(w.orderID)
	if !ok {
		return ErrOrderNotLoaded
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Idle {
		return ErrAttemptAlreadyStaged
	}

	current := cached.Status()
	if current.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if to == current {
		return ErrSameStatus
	}

	w.state = AwaitingConfirmation
	w.toStatus = to
	w.note = note
	w.lastError = nil
	return nil
}

// CancelAttempt discards the staged attempt and returns to Idle.
// The entered note is dropped with it.
func (w *Workflow) CancelAttempt() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != AwaitingConfirmation {
		return ErrNoAttemptToConfirm
	}

	w.reset()
	return nil
}

// ConfirmAttempt submits the staged attempt through the coordinator.
//
// On success the workflow returns to Idle, the note is cleared, and the
// coordinator's success signal auto-expires after the display window. On any
// failure the workflow returns to AwaitingConfirmation with the error and
// the note both preserved; it never falls back to Idle silently.
func (w *Workflow) ConfirmAttempt(ctx context.Context) (*order.Order, error) {
	w.mu.Lock()
	if w.state != AwaitingConfirmation {
		w.mu.Unlock()
		return nil, ErrNoAttemptToConfirm
	}
	w.state = Submitting
	to, note := w.toStatus, w.note
	w.mu.Unlock()

	updated, terr := w.coordinator.RequestStatusChange(ctx, w.orderID, to, note, w.actor)

	w.mu.Lock()
	defer w.mu.Unlock()

	if terr != nil {
		w.state = AwaitingConfirmation
		w.lastError = terr
		return nil, terr
	}

	w.reset()
	if w.successTimer != nil {
		w.successTimer.Stop()
	}
	w.successTimer = time.AfterFunc(w.successWindow, func() {
		w.coordinator.ClearSuccess(w.orderID)
	})
	return updated, nil
}

// reset returns the workflow to Idle, discarding the staged attempt.
func (w *Workflow) reset() {
	w.state = Idle
	w.toStatus = order.Unknown
	w.note = ""
	w.lastError = nil
}
