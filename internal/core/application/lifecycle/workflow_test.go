package lifecycle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/lifecycle"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedWorkflow(t *testing.T, store *fakeStore, o *order.Order, window time.Duration) (*lifecycle.Coordinator, *lifecycle.Workflow) {
	t.Helper()
	c := lifecycle.NewCoordinator(store, testLogger())
	_, err := c.Load(t.Context(), o.ID())
	require.NoError(t, err)
	return c, lifecycle.NewWorkflow(c, o.ID(), "admin", window)
}

func TestWorkflow_Begin(t *testing.T) {
	t.Run("should stage an attempt and await confirmation", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)

		err := w.Begin(order.Paid, "card settled")

		require.NoError(t, err)
		assert.Equal(t, lifecycle.AwaitingConfirmation, w.State())
		assert.Equal(t, order.Paid, w.Target())
		assert.Equal(t, "card settled", w.Note())
		assert.Equal(t, 0, store.calls())
	})

	t.Run("should reject when the order is not loaded", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		c := lifecycle.NewCoordinator(store, testLogger())
		w := lifecycle.NewWorkflow(c, o.ID(), "admin", 0)

		err := w.Begin(order.Paid, "")

		assert.ErrorIs(t, err, lifecycle.ErrOrderNotLoaded)
	})

	t.Run("should reject a second attempt while one is staged", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)
		require.NoError(t, w.Begin(order.Paid, ""))

		err := w.Begin(order.Cancelled, "")

		assert.ErrorIs(t, err, lifecycle.ErrAttemptAlreadyStaged)
		assert.Equal(t, order.Paid, w.Target())
	})

	t.Run("should reject the current status as a target", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)

		err := w.Begin(order.Pending, "")

		assert.ErrorIs(t, err, lifecycle.ErrSameStatus)
		assert.Equal(t, lifecycle.Idle, w.State())
	})

	t.Run("should reject any attempt on a terminal order", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled, "", "admin", time.Now()))
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)

		err := w.Begin(order.Pending, "")

		assert.ErrorIs(t, err, lifecycle.ErrOrderIsTerminal)
		assert.Empty(t, w.AvailableTargets())
	})
}

func TestWorkflow_AvailableTargets(t *testing.T) {
	store := newFakeStore()
	o := storedOrder(t)
	store.put(o)
	_, w := loadedWorkflow(t, store, o, 0)

	assert.ElementsMatch(t,
		[]order.Status{order.Paid, order.Cancelled},
		w.AvailableTargets())
}

func TestWorkflow_CancelAttempt(t *testing.T) {
	t.Run("should drop the staged attempt and its note", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)
		require.NoError(t, w.Begin(order.Paid, "card settled"))

		require.NoError(t, w.CancelAttempt())

		assert.Equal(t, lifecycle.Idle, w.State())
		assert.Empty(t, w.Note())
		assert.Equal(t, 0, store.calls())
	})

	t.Run("should fail when nothing is staged", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)

		err := w.CancelAttempt()

		assert.ErrorIs(t, err, lifecycle.ErrNoAttemptToConfirm)
	})
}

func TestWorkflow_ConfirmAttempt(t *testing.T) {
	t.Run("should submit and return to idle on success", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		c, w := loadedWorkflow(t, store, o, time.Minute)
		require.NoError(t, w.Begin(order.Paid, "card settled"))

		updated, err := w.ConfirmAttempt(t.Context())

		require.NoError(t, err)
		assert.Equal(t, order.Paid, updated.Status())
		assert.Equal(t, lifecycle.Idle, w.State())
		assert.Empty(t, w.Note())
		assert.Nil(t, w.LastError())
		assert.True(t, c.Signals(o.ID()).Succeeded)
	})

	t.Run("should fail when nothing is staged", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)

		_, err := w.ConfirmAttempt(t.Context())

		assert.ErrorIs(t, err, lifecycle.ErrNoAttemptToConfirm)
	})

	t.Run("should reject an illegal staged target at confirmation without calling the store", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		_, w := loadedWorkflow(t, store, o, 0)
		require.NoError(t, w.Begin(order.Dispatched, "expedite"))

		_, err := w.ConfirmAttempt(t.Context())

		require.Error(t, err)
		assert.True(t, w.LastError().IsPolicyRejection())
		assert.Equal(t, order.ReasonInvalidTransition, w.LastError().Reason)
		assert.Equal(t, lifecycle.AwaitingConfirmation, w.State())
		assert.Equal(t, "expedite", w.Note())
		assert.Equal(t, 0, store.calls())
	})

	t.Run("should preserve the note and surface the error on failure", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		store.failWith = errors.New("connection refused")
		_, w := loadedWorkflow(t, store, o, 0)
		require.NoError(t, w.Begin(order.Paid, "card settled"))

		_, err := w.ConfirmAttempt(t.Context())

		require.Error(t, err)
		assert.Equal(t, lifecycle.AwaitingConfirmation, w.State())
		assert.Equal(t, "card settled", w.Note())
		require.NotNil(t, w.LastError())
		assert.True(t, w.LastError().IsTransportFailure())

		// The operator retries without re-entering anything.
		store.failWith = nil
		updated, err := w.ConfirmAttempt(t.Context())
		require.NoError(t, err)
		assert.Equal(t, order.Paid, updated.Status())
		assert.Equal(t, "card settled", updated.History()[1].Note)
	})

	t.Run("should expire the success signal after the display window", func(t *testing.T) {
		store := newFakeStore()
		o := storedOrder(t)
		store.put(o)
		c, w := loadedWorkflow(t, store, o, 20*time.Millisecond)
		require.NoError(t, w.Begin(order.Paid, ""))

		_, err := w.ConfirmAttempt(t.Context())

		require.NoError(t, err)
		require.True(t, c.Signals(o.ID()).Succeeded)
		assert.Eventually(t, func() bool {
			return !c.Signals(o.ID()).Succeeded
		}, time.Second, 5*time.Millisecond)
	})
}

func TestWorkflow_FullRound(t *testing.T) {
	store := newFakeStore()
	o := storedOrder(t)
	store.put(o)
	_, w := loadedWorkflow(t, store, o, time.Minute)

	require.NoError(t, w.Begin(order.Paid, ""))
	_, err := w.ConfirmAttempt(t.Context())
	require.NoError(t, err)

	// The paid order no longer offers cancellation.
	assert.ElementsMatch(t,
		[]order.Status{order.Dispatched, order.Delivered},
		w.AvailableTargets())

	require.NoError(t, w.Begin(order.Delivered, "left at the door"))
	_, err = w.ConfirmAttempt(t.Context())
	require.NoError(t, err)

	assert.Empty(t, w.AvailableTargets())
	assert.ErrorIs(t, w.Begin(order.Paid, ""), lifecycle.ErrOrderIsTerminal)
}
