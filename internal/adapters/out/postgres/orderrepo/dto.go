// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Totals are stored denormalized in minor units; the status history lives in
// its own table and is joined on read.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status     int       `gorm:"index"`
	Subtotal   int64
	Shipping   int64
	Tax        int64
	Discount   int64
	GrandTotal int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one purchased product line within an order.
type LineItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_items"
}

// StatusEventDTO represents one append-only entry in an order's status history.
// Seq is the zero-based position of the entry within its order's history and
// forms the primary key together with the order ID, so an entry can never be
// written twice.
type StatusEventDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int       `gorm:"primaryKey;autoIncrement:false"`
	Status         int
	PreviousStatus *int
	ChangedAt      time.Time
	Note           string
	Actor          string
}

// TableName specifies the database table name for status history entries.
func (StatusEventDTO) TableName() string {
	return "status_events"
}

// fromDomain converts an order domain aggregate to its database representation.
// Returns the order row together with its line item and history rows.
func fromDomain(aggregate *order.Order) (OrderDTO, []LineItemDTO, []StatusEventDTO) {
	totals := aggregate.Totals()
	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		Status:     int(aggregate.Status()),
		Subtotal:   totals.Subtotal().Cents(),
		Shipping:   totals.Shipping().Cents(),
		Tax:        totals.Tax().Cents(),
		Discount:   totals.Discount().Cents(),
		GrandTotal: totals.GrandTotal().Cents(),
	}

	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			OrderID:   dto.ID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Cents(),
		})
	}

	history := aggregate.History()
	eventDTOs := make([]StatusEventDTO, 0, len(history))
	for seq, event := range history {
		eventDTOs = append(eventDTOs, eventFromDomain(dto.ID, seq, event))
	}

	return dto, itemDTOs, eventDTOs
}

func eventFromDomain(orderID uuid.UUID, seq int, event order.StatusEvent) StatusEventDTO {
	var previous *int
	if event.PreviousStatus != nil {
		raw := int(*event.PreviousStatus)
		previous = &raw
	}

	return StatusEventDTO{
		OrderID:        orderID,
		Seq:            seq,
		Status:         int(event.Status),
		PreviousStatus: previous,
		ChangedAt:      event.ChangedAt,
		Note:           event.Note,
		Actor:          event.Actor,
	}
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate including its history using RestoreOrder.
// Event rows must already be ordered by Seq ascending.
func toDomain(dto OrderDTO, itemDTOs []LineItemDTO, eventDTOs []StatusEventDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	totals, err := restoreTotals(dto)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusEvent, 0, len(eventDTOs))
	for _, eventDTO := range eventDTOs {
		history = append(history, eventToDomain(eventDTO))
	}

	return order.RestoreOrder(id, items, totals, order.Status(dto.Status), history)
}

func restoreTotals(dto OrderDTO) (order.Totals, error) {
	amounts := make([]kernel.Money, 0, 5)
	for _, cents := range []int64{dto.Subtotal, dto.Shipping, dto.Tax, dto.Discount, dto.GrandTotal} {
		amount, err := kernel.NewMoney(cents)
		if err != nil {
			return order.Totals{}, err
		}
		amounts = append(amounts, amount)
	}
	return order.RestoreTotals(amounts[0], amounts[1], amounts[2], amounts[3], amounts[4])
}

func itemToDomain(dto LineItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(productID, dto.Quantity, unitPrice)
}

func eventToDomain(dto StatusEventDTO) order.StatusEvent {
	var previous *order.Status
	if dto.PreviousStatus != nil {
		status := order.Status(*dto.PreviousStatus)
		previous = &status
	}

	return order.StatusEvent{
		Status:         order.Status(dto.Status),
		PreviousStatus: previous,
		ChangedAt:      dto.ChangedAt,
		Note:           dto.Note,
		Actor:          dto.Actor,
	}
}
