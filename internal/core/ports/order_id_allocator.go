package ports

import (
	"context"

	"cafe/internal/core/domain/model/order"
)

// OrderIDAllocator hands out order numbers. Two calls never return the same ID, even
// from concurrent sessions, and an ID is not reused after its transaction rolls back.
type OrderIDAllocator interface {
	// Allocate returns a fresh ID or an errs.AllocationFailedError.
	Allocate(ctx context.Context) (order.ID, error)
}
