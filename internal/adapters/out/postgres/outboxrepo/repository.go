package outboxrepo

import (
	"context"
	"time"

	"cafe/internal/adapters/out/postgres/pgerr"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository and the write side used by
// the unit of work.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append stores events as unprocessed messages.
func (r *GormOutboxRepository) Append(ctx context.Context, events []order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerr.Classify("append outbox messages", err)
	}
	return nil
}

// FetchPending locks up to limit unprocessed messages with FOR UPDATE SKIP LOCKED,
// so concurrent relays never pick the same message.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("fetch outbox messages", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", raw).
		Update("processed_at", at.UTC()).Error
	if err != nil {
		return pgerr.Classify("mark outbox messages processed", err)
	}
	return nil
}
