package queries

import (
	"context"
	"time"

	"cafe/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler builds the staff board of orders still waiting for payment.
type GetOpenOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
	now    func() time.Time
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{
		db:     db,
		policy: services.NewOrderAccessPolicy(),
		now:    time.Now,
	}
}

// Handle returns unpaid orders with createdAt >= now - maxAge, oldest id first.
func (h GetOpenOrdersQueryHandler) Handle(ctx context.Context, query GetOpenOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanViewOpenOrders(query.Caller()); err != nil {
		return nil, err
	}

	since := h.now().UTC().Add(-query.MaxAge())

	var views []OrderView
	err := readSnapshot(ctx, h.db, "read open orders", func(tx *gorm.DB) error {
		rows, queryErr := tx.Raw(`
			SELECT
				id,
				owner,
				created_at,
				paid,
				total
			FROM orders
			WHERE paid = FALSE
				AND created_at >= ?
			ORDER BY id
		`, since).Rows()
		if queryErr != nil {
			return storageError("query open orders", queryErr)
		}

		var scanErr error
		views, scanErr = scanOrders(rows)
		_ = rows.Close()
		if scanErr != nil {
			return storageError("scan open orders", scanErr)
		}

		if itemsErr := loadLineItems(ctx, tx, views); itemsErr != nil {
			return storageError("query open order items", itemsErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}
