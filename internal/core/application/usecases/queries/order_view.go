// Package queries contains the read operations of the order core.
// Query handlers read straight from the database with parameterized SQL and return
// read models; they never lock rows and never write.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order with its line items.
type OrderView struct {
	ID        order.ID
	Owner     string
	CreatedAt time.Time
	Paid      bool
	Total     kernel.Money
	Items     []LineItemView
}

// LineItemView is one row of an order as seen by the kitchen and the customer.
type LineItemView struct {
	ItemName  string
	UnitPrice kernel.Money
	Status    order.ItemStatus
	Comment   string
}

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			view  OrderView
			id    int64
			total decimal.Decimal
		)
		if err := rows.Scan(&id, &view.Owner, &view.CreatedAt, &view.Paid, &total); err != nil {
			return nil, err
		}

		money, err := kernel.NewMoney(total)
		if err != nil {
			return nil, err
		}
		view.ID = order.ID(id)
		view.CreatedAt = view.CreatedAt.UTC()
		view.Total = money
		view.Items = make([]LineItemView, 0)
		views = append(views, view)
	}
	return views, rows.Err()
}

// loadLineItems fills the Items of every view, keeping each order's items in the order
// they were added.
func loadLineItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(views))
	index := make(map[order.ID]int, len(views))
	for i, view := range views {
		ids = append(ids, view.ID.Int64())
		index[view.ID] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			item_name,
			unit_price,
			status,
			comment
		FROM line_items
		WHERE order_id IN ?
		ORDER BY added_at, id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		item, scanErr := scanLineItem(rows, &orderID)
		if scanErr != nil {
			return scanErr
		}
		i := index[order.ID(orderID)]
		views[i].Items = append(views[i].Items, item)
	}
	return rows.Err()
}

func scanLineItem(rows *sql.Rows, leading ...any) (LineItemView, error) {
	var (
		item   LineItemView
		price  decimal.Decimal
		status string
	)
	dest := append(leading, &item.ItemName, &price, &status, &item.Comment)
	if err := rows.Scan(dest...); err != nil {
		return LineItemView{}, err
	}

	money, err := kernel.NewMoney(price)
	if err != nil {
		return LineItemView{}, err
	}
	parsed, err := order.ParseItemStatus(status)
	if err != nil {
		return LineItemView{}, err
	}
	item.UnitPrice = money
	item.Status = parsed
	return item, nil
}

// readSnapshot runs fn in one read-only REPEATABLE READ transaction, so order headers
// and their line items come from the same snapshot.
func readSnapshot(ctx context.Context, db *gorm.DB, operation string, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil && !errors.Is(err, errs.ErrStorageUnavailable) {
		return storageError(operation, err)
	}
	return err
}

func storageError(operation string, err error) error {
	return errs.NewStorageUnavailableErrorWithCause(operation, err)
}
