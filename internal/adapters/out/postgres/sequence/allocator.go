// Package sequence allocates order numbers from the orders_id_seq PostgreSQL sequence.
package sequence

import (
	"context"

	"cafe/internal/adapters/out/postgres/pgerr"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderIDAllocator implements ports.OrderIDAllocator. nextval is atomic across
// sessions and is not rolled back, so a number is never handed out twice.
type GormOrderIDAllocator struct {
	db *gorm.DB
}

func NewGormOrderIDAllocator(db *gorm.DB) *GormOrderIDAllocator {
	return &GormOrderIDAllocator{db: db}
}

// Allocate returns the next order number.
func (a *GormOrderIDAllocator) Allocate(ctx context.Context) (order.ID, error) {
	var next int64
	if err := a.db.WithContext(ctx).Raw("SELECT nextval('orders_id_seq')").Scan(&next).Error; err != nil {
		return 0, errs.NewAllocationFailedError(pgerr.Classify("allocate order id", err))
	}

	id, err := order.NewID(next)
	if err != nil {
		return 0, errs.NewAllocationFailedError(err)
	}
	return id, nil
}
