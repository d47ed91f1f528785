// Package outboxrepo stores serialized domain events in the outbox table and hands them
// to the relay.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is the outbox row. Payload holds the JSON encoded event.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(64);not null"`
	AggregateID int64      `gorm:"not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"type:timestamptz;not null"`
	ProcessedAt *time.Time `gorm:"type:timestamptz"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox"
}

func fromEvent(event order.DomainEvent) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessageDTO{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	return OutboxMessageDTO{
		ID:          kernel.NewUUID().Bytes(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().Int64(),
		Payload:     string(payload),
		OccurredAt:  event.OccurredAt().UTC(),
	}, nil
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		Name:        dto.Name,
		AggregateID: dto.AggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}
