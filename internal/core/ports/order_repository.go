// Package ports defines the contracts between the order core and its collaborators:
// storage, the identity allocator, the menu catalog, the user directory and the
// message broker. Adapters under internal/adapters implement them.
package ports

import (
	"context"

	"cafe/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An aggregate is always stored and loaded together with its line items.
type OrderRepository interface {
	// Add persists a new order and its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the header and every line item of an existing order.
	// New line items are inserted; existing ones are overwritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate loads an order and holds a row lock on it until the surrounding
	// transaction ends, so concurrent writers to the same order are serialized.
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)
}
