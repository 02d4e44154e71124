package order

import "time"

// ActorSystem is the actor recorded on the creation event. All later events
// carry the identity of the operator who performed the transition.
const ActorSystem = "system"

// StatusEvent is one immutable entry in an order's audit history, recording a
// past transition. The history is append-only: entries are never mutated or
// reordered once written.
type StatusEvent struct {
	// Status is the status transitioned to.
	Status Status

	// PreviousStatus is the status transitioned from.
	// Nil only for the creation event.
	PreviousStatus *Status

	// ChangedAt is when the transition was applied. Timestamps are
	// monotonically non-decreasing across an order's history.
	ChangedAt time.Time

	// Note is optional free text supplied by the actor.
	Note string

	// Actor identifies who performed the change.
	Actor string
}

// newCreationEvent builds the first history entry for a freshly placed order.
func newCreationEvent(status Status, at time.Time) StatusEvent {
	return StatusEvent{
		Status:    status,
		ChangedAt: at,
		Actor:     ActorSystem,
	}
}
