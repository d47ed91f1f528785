package queries

import (
	"context"
	"database/sql"
	"errors"

	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler lists the line items of an order with their status and
// comment. It reads committed state only, so calling it twice without writes in between
// returns the same rows in the same order.
type GetOrderStatusQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{
		db:     db,
		policy: services.NewOrderAccessPolicy(),
	}
}

func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) ([]LineItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var owner string
	err := h.db.WithContext(ctx).
		Raw(`SELECT owner FROM orders WHERE id = ?`, query.OrderID().Int64()).
		Row().
		Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, storageError("query order owner", err)
	}

	if err = h.policy.CanViewStatusOf(query.Caller(), query.OrderID(), owner); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			item_name,
			unit_price,
			status,
			comment
		FROM line_items
		WHERE order_id = ?
		ORDER BY added_at, id
	`, query.OrderID().Int64()).Rows()
	if err != nil {
		return nil, storageError("query order status", err)
	}
	defer rows.Close()

	items := make([]LineItemView, 0)
	for rows.Next() {
		item, scanErr := scanLineItem(rows)
		if scanErr != nil {
			return nil, storageError("scan order status", scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("scan order status", err)
	}

	return items, nil
}
