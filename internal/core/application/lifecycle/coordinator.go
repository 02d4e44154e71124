package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// OrderStore is the authoritative collaborator the coordinator defers to.
// The store re-validates every transition server-side, independent of the
// coordinator's local pre-check, and its verdict is the final word.
type OrderStore interface {
	// Get fetches one order including its full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ChangeStatus requests the transition. On success it returns the
	// updated order with exactly one newly appended history entry; on an
	// illegal transition it returns an error matching
	// order.ErrIllegalTransition whose message is the rejection reason.
	ChangeStatus(ctx context.Context, id kernel.UUID, to order.Status, note, actor string) (*order.Order, error)
}

// Signals is the observable side-effect state of status change attempts for
// one order. Consumers read it to drive progress indicators, error banners
// and success confirmations.
//
// Succeeded is a one-shot flag: it stays set until the consumer clears it via
// ClearSuccess, so a success banner does not silently persist across views.
type Signals struct {
	InFlight  bool
	LastError *TransitionError
	Succeeded bool
}

// Coordinator orchestrates status changes for orders. It owns the local
// order cache, enforces the single-in-flight-per-order rule, pre-validates
// transitions against the policy, and reconciles server-confirmed results.
//
// All writes to an order's status and history go through RequestStatusChange;
// no other component mutates the cache. Status changes for different orders
// are independent and may be in flight concurrently.
//
// Example:
//
//	c := lifecycle.NewCoordinator(store, logger)
//	if _, err := c.Load(ctx, orderID); err != nil {
//	    return err
//	}
//	updated, err := c.RequestStatusChange(ctx, orderID, order.Paid, "card settled", "admin")
type Coordinator struct {
	store  OrderStore
	logger *slog.Logger

	mu       sync.Mutex
	cache    map[kernel.UUID]*order.Order
	inFlight map[kernel.UUID]bool
	signals  map[kernel.UUID]Signals
}

// NewCoordinator creates a coordinator backed by the given authoritative store.
func NewCoordinator(store OrderStore, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		logger:   logger.With("component", "status_update_coordinator"),
		cache:    make(map[kernel.UUID]*order.Order),
		inFlight: make(map[kernel.UUID]bool),
		signals:  make(map[kernel.UUID]Signals),
	}
}

// Load fetches an order from the store and primes the local cache.
func (c *Coordinator) Load(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	loaded, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.applyLocked(loaded)
	loaded = c.cache[id]
	c.mu.Unlock()
	return loaded, nil
}

// CachedOrder returns the locally cached order, if any.
func (c *Coordinator) CachedOrder(id kernel.UUID) (*order.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.cache[id]
	return cached, ok
}

// Signals returns the current signal state for an order.
func (c *Coordinator) Signals(id kernel.UUID) Signals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signals[id]
}

// ClearSuccess resets the one-shot success flag after the consumer has
// displayed it.
func (c *Coordinator) ClearSuccess(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sig := c.signals[id]
	sig.Succeeded = false
	c.signals[id] = sig
}

// ApplyAuthoritative reconciles a server-confirmed order into the local
// cache. Used by RequestStatusChange and by the periodic cache refresh job.
// If a cached copy already reflects a later change, the stale record is
// dropped: the entry with the later last-event timestamp wins.
func (c *Coordinator) ApplyAuthoritative(confirmed *order.Order) {
	if confirmed == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(confirmed)
}

// applyLocked applies a server-confirmed order under c.mu.
func (c *Coordinator) applyLocked(confirmed *order.Order) {
	cached, ok := c.cache[confirmed.ID()]
	if ok {
		cachedLast, cachedHas := cached.LastEvent()
		confirmedLast, confirmedHas := confirmed.LastEvent()
		if cachedHas && confirmedHas && confirmedLast.ChangedAt.Before(cachedLast.ChangedAt) {
			return
		}
	}
	c.cache[confirmed.ID()] = confirmed
}

// RequestStatusChange performs one status change attempt for an order.
//
// The attempt fails fast, without any store call, when another attempt for
// the same order is in flight or when the locally cached status makes the
// transition illegal. When the cache holds no entry (e.g. after a restart)
// the request is sent anyway: the store may know a newer status and its
// verdict is authoritative.
//
// The store call is made on a detached context so a caller abandoning the
// attempt does not cancel the authoritative write; the confirmed result is
// always reconciled into the cache, even if no view is left to display it.
//
// On success the cached order is replaced with the server-confirmed record
// (never a locally optimistic guess) and the Succeeded signal is set. On any
// failure the cache is untouched and LastError is set.
func (c *Coordinator) RequestStatusChange(
	ctx context.Context,
	id kernel.UUID,
	to order.Status,
	note, actor string,
) (*order.Order, *TransitionError) {
	c.mu.Lock()

	if c.inFlight[id] {
		c.mu.Unlock()
		// The first attempt's signals stay untouched.
		return nil, &TransitionError{
			Kind:   KindConcurrentAttemptRejected,
			Reason: ReasonAttemptInProgress,
		}
	}

	if cached, ok := c.cache[id]; ok {
		from := cached.Status()
		if !from.CanTransitionTo(to) {
			terr := &TransitionError{
				Kind:   KindPolicyRejection,
				Reason: order.RejectionReason(from, to),
			}
			c.signals[id] = Signals{LastError: terr}
			c.mu.Unlock()
			c.logger.InfoContext(ctx, "transition rejected locally",
				"order_id", id.String(), "from", from.String(), "to", to.String(), "reason", terr.Reason)
			return nil, terr
		}
	}

	c.inFlight[id] = true
	c.signals[id] = Signals{InFlight: true}
	c.mu.Unlock()

	// Detached from the caller's lifetime: navigating away must not cancel
	// the authoritative write, only its UI binding.
	confirmed, err := c.store.ChangeStatus(context.WithoutCancel(ctx), id, to, note, actor)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)

	if err != nil {
		terr := c.classify(err)
		c.signals[id] = Signals{LastError: terr}
		c.logger.WarnContext(ctx, "status change failed",
			"order_id", id.String(), "to", to.String(), "kind", terr.Kind.String(), "reason", terr.Reason)
		return nil, terr
	}

	c.applyLocked(confirmed)
	c.signals[id] = Signals{Succeeded: true}
	c.logger.InfoContext(ctx, "status change confirmed",
		"order_id", id.String(), "status", confirmed.Status().String())
	return c.cache[id], nil
}

// classify maps a store error into the attempt error taxonomy.
// A rejection carries the server's reason verbatim; anything else is a
// transport failure, which the UI must present differently.
func (c *Coordinator) classify(err error) *TransitionError {
	if errors.Is(err, order.ErrIllegalTransition) || errors.Is(err, errs.ErrObjectNotFound) {
		return &TransitionError{
			Kind:   KindServerRejection,
			Reason: err.Error(),
			Cause:  err,
		}
	}
	return &TransitionError{
		Kind:   KindTransportFailure,
		Reason: ReasonUnreachable,
		Cause:  err,
	}
}
