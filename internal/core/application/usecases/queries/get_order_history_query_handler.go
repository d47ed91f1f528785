package queries

import (
	"context"

	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the recent orders of a login.
// Customers see their own history only; staff may look up anyone's.
type GetOrderHistoryQueryHandler struct {
	db     *gorm.DB
	users  ports.UserDirectory
	policy services.OrderAccessPolicy
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB, users ports.UserDirectory) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{
		db:     db,
		users:  users,
		policy: services.NewOrderAccessPolicy(),
	}
}

// Handle returns up to OrderHistoryLimit orders by descending id. An unknown login is
// NotFound; a known login without orders yields an empty slice.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanViewHistoryOf(query.Caller(), query.Owner()); err != nil {
		return nil, err
	}

	exists, err := h.users.Exists(ctx, query.Owner())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("user", query.Owner())
	}

	var views []OrderView
	err = readSnapshot(ctx, h.db, "read order history", func(tx *gorm.DB) error {
		rows, queryErr := tx.Raw(`
			SELECT
				id,
				owner,
				created_at,
				paid,
				total
			FROM orders
			WHERE owner = ?
			ORDER BY id DESC
			LIMIT ?
		`, query.Owner(), OrderHistoryLimit).Rows()
		if queryErr != nil {
			return storageError("query order history", queryErr)
		}

		var scanErr error
		views, scanErr = scanOrders(rows)
		_ = rows.Close()
		if scanErr != nil {
			return storageError("scan order history", scanErr)
		}

		if itemsErr := loadLineItems(ctx, tx, views); itemsErr != nil {
			return storageError("query order history items", itemsErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}
