package commands

import (
	"errors"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// status. Carries the optional audit note and the identity of the operator
// performing the change.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Paid, "card settled", "admin@shop")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	toStatus order.Status
	note     string
	actor    string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order.
// Validates the order ID, the target status and the actor. The transition
// itself is validated later against the order's current status; this
// constructor only rejects values that are invalid in isolation.
func NewChangeOrderStatusCommand(orderID kernel.UUID, toStatus order.Status, note, actor string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setToStatus(toStatus),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToStatus returns the requested target status.
func (c ChangeOrderStatusCommand) ToStatus() order.Status {
	return c.toStatus
}

// Note returns the optional audit note.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

// Actor returns the identity performing the change.
func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setToStatus(toStatus order.Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}

	c.toStatus = toStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
