// Package postgres provides the GORM-based Unit of Work that scopes every command to a
// single database transaction.
//
// Repositories handed out by a unit of work share its transaction. Aggregates saved
// through them are tracked, and on Commit their pending domain events are written to
// the outbox table inside the same transaction, so an order change and the events
// describing it are persisted together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate o
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to one goroutine. Concurrent operations use separate
// instances; conflicting writes are serialized by row locks taken in the database.
package postgres

import (
	"context"

	"cafe/internal/adapters/out/postgres/orderrepo"
	"cafe/internal/adapters/out/postgres/outboxrepo"
	"cafe/internal/adapters/out/postgres/pgerr"
	"cafe/internal/adapters/out/postgres/sequence"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        order.ID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []order.DomainEvent
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking list.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the outbox writes for the
// aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin again on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Classify("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit writes the pending domain events of every tracked aggregate to the outbox and
// commits. If either step fails the transaction is rolled back and an
// errs.StorageUnavailableError is returned.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	defer func() {
		uow.trackedAggregates = uow.trackedAggregates[:0]
	}()

	if err := uow.flushDomainEvents(ctx, tx); err != nil {
		_ = tx.Rollback().Error
		return pgerr.Classify("write outbox", err)
	}

	if err := tx.Commit().Error; err != nil {
		return pgerr.Classify("commit transaction", err)
	}

	return nil
}

// Rollback discards the transaction. Calling it after Commit returns
// gorm.ErrInvalidTransaction, so handlers can defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current transaction, or to
// the plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OrderIDAllocator returns an allocator bound to the current transaction.
func (uow *GormUnitOfWork) OrderIDAllocator() ports.OrderIDAllocator {
	return sequence.NewGormOrderIDAllocator(uow.conn())
}

// OutboxRepository returns an outbox repository bound to the current transaction.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved within this unit of work. Repositories
// call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id order.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushDomainEvents(ctx context.Context, tx *gorm.DB) error {
	outbox := outboxrepo.NewGormOutboxRepository(tx)
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if err := outbox.Append(ctx, source.DomainEvents()); err != nil {
			return err
		}
		source.ClearDomainEvents()
	}
	return nil
}
