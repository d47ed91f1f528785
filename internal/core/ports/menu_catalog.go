package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
)

// MenuCatalog is the read-only view of the menu the core prices items against.
type MenuCatalog interface {
	// Lookup returns the current unit price of itemName. exists is false for a
	// name that is not on the menu; err is reserved for storage failures.
	Lookup(ctx context.Context, itemName string) (price kernel.Money, exists bool, err error)
}
