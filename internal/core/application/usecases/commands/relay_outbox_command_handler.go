package commands

import (
	"context"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"
)

// DefaultPublishTimeout bounds the wait for one broker confirmation.
const DefaultPublishTimeout = 5 * time.Second

// RelayOutboxCommandHandler moves outbox messages to the broker.
//
// Messages are locked with SKIP LOCKED, published in order and acknowledged in the same
// transaction. When a publish fails, the messages already sent are still acknowledged
// and the rest stay pending for the next run. Delivery is at least once.
type RelayOutboxCommandHandler struct {
	uowFactory     OutboxUoWFactory
	publisher      ports.EventPublisher
	publishTimeout time.Duration
}

// NewRelayOutboxCommandHandler creates the handler. A publishTimeout of zero or less
// means DefaultPublishTimeout.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	publishTimeout time.Duration,
) RelayOutboxCommandHandler {
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return RelayOutboxCommandHandler{
		uowFactory:     uowFactory,
		publisher:      publisher,
		publishTimeout: publishTimeout,
	}
}

// Handle returns the number of messages published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, message := range pending {
		publishCtx, cancel := context.WithTimeout(ctx, h.publishTimeout)
		publishErr = h.publisher.Publish(publishCtx, message)
		cancel()
		if publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", message.Name, message.ID.String(), publishErr)
			break
		}
		published = append(published, message.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkProcessed(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
