package ports

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID int64
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
// Messages are written by the unit of work on commit, never through this interface.
type OutboxRepository interface {
	// FetchPending locks up to limit unprocessed messages, oldest first, skipping rows
	// already locked by another relay.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkProcessed stamps the given messages as published.
	MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
