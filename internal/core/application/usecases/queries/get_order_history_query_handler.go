package queries

import (
	"context"
	"database/sql"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler renders an order's audit trail newest-first.
// An order with no recorded events yields an empty slice, not an error, so a
// projection constructed before any history exists displays nothing.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history projections.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the history query for one order.
// Entries come back newest-first with the most recent flagged Current.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			previous_status,
			changed_at,
			note,
			actor
		FROM status_events
		WHERE order_id = ?
		ORDER BY seq DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var status int
		var previousStatus sql.NullInt64

		err = rows.Scan(
			&status,
			&previousStatus,
			&entry.ChangedAt,
			&entry.Note,
			&entry.Actor,
		)
		if err != nil {
			return nil, err
		}

		entry.Status = order.Status(status)
		if previousStatus.Valid {
			prev := order.Status(previousStatus.Int64)
			entry.PreviousStatus = &prev
		}
		entry.Current = len(entries) == 0
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
