package orderrepo

import (
	"context"
	"errors"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its line items and the
// creation event.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, events := fromDomain(aggregate)

	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	if err := db.Create(&events).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
//
// The status row is updated in place; history entries are append-only, so
// only events past the highest persisted sequence number are inserted.
// Already persisted entries are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, events := fromDomain(aggregate)

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	persisted, err := r.persistedEventCount(ctx, dto.ID)
	if err != nil {
		return err
	}
	if persisted < len(events) {
		appended := events[persisted:]
		if err := db.Create(&appended).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its line items and full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

// GetAllInStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return r.hydrateAll(ctx, dtos)
}

// GetAllActive retrieves all orders not yet delivered or cancelled.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status NOT IN ?", []int{int(order.Delivered), int(order.Cancelled)}).
		Error
	if err != nil {
		return nil, err
	}

	return r.hydrateAll(ctx, dtos)
}

func (r *GormOrderRepository) hydrate(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var items []LineItemDTO
	if err := db.Find(&items, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var events []StatusEventDTO
	if err := db.Order("seq ASC").Find(&events, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items, events)
}

func (r *GormOrderRepository) hydrateAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.hydrate(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) persistedEventCount(ctx context.Context, orderID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&StatusEventDTO{}).
		Where("order_id = ?", orderID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
