package queries

import (
	"errors"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/guard"
)

var (
	ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
		"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
	)
)

// GetOrdersByStatusQuery lists orders for the admin console, optionally
// filtered to a single status. Without a filter all orders are returned.
type GetOrdersByStatusQuery struct {
	status    order.Status
	hasFilter bool

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query filtered to one status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status:    status,
		hasFilter: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetAllOrdersQuery creates an unfiltered listing query.
func NewGetAllOrdersQuery() GetOrdersByStatusQuery {
	return GetOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the filter status; only meaningful when HasFilter is true.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

// HasFilter reports whether the query is restricted to one status.
func (q GetOrdersByStatusQuery) HasFilter() bool {
	return q.hasFilter
}

// GetOrdersByStatusQueryResponse is one row of the admin order listing.
type GetOrdersByStatusQueryResponse struct {
	ID         kernel.UUID
	Status     order.Status
	GrandTotal int64
}
