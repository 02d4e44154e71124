package ports

import (
	"context"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must persist the append-only status history alongside the
// order row; Get and the listing methods return fully hydrated aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate, including its creation event.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Only newly appended history entries are written; existing entries
	// are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier with its full history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status.
	// Used by the cache refresh job to re-sync in-progress orders.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
