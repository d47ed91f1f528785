// Package commands contains the order operations that modify state.
// Every command is a guarded value object; its handler validates it, checks the
// caller's rights, then runs the change inside one unit of work so it either fully
// commits or leaves nothing behind.
package commands

import (
	"context"

	"cafe/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AllocatorFactory provides the identity allocator within a transaction.
	AllocatorFactory interface {
		OrderIDAllocator() ports.OrderIDAllocator
	}

	// OutboxRepoFactory provides access to pending outbox messages within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for commands that change an existing order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlaceOrderUoW manages the transaction that allocates an order number and stores
	// the new order, so both happen or neither does.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   id, err := uow.OrderIDAllocator().Allocate(ctx)
	//   // ... build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	PlaceOrderUoW interface {
		TxManager
		OrderRepoFactory
		AllocatorFactory
	}

	// PlaceOrderUoWFactory creates new place-order unit of work instances.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OutboxUoW manages the relay transaction that locks and acknowledges outbox messages.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
