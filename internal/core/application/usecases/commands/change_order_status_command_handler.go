package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the order to transition does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ChangeOrderStatusCommandHandler is the authoritative transition path.
// It re-runs the transition policy against the stored order inside a
// transaction, independent of any client-side pre-check, and persists the
// appended history entry atomically with the status change.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    // unknown order
//	case errors.Is(err, order.ErrIllegalTransition):
//	    // err.Error() carries the operator-facing reason
//	case err != nil:
//	    // infrastructure failure
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command and returns the updated order.
// The read and the write happen inside one transaction so a concurrent
// transition cannot interleave between validation and persistence.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	loaded, err := repo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		// Keep the repository's sentinel so callers can match either error.
		return nil, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	if err = loaded.ChangeStatus(cmd.ToStatus(), cmd.Note(), cmd.Actor(), time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, loaded); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loaded, nil
}
