package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"
)

// OutboxRepository stores events in the same transaction as the order change.
//
// Delivery is at least once: the relay publishes a batch, then marks each
// message sent, then commits. A crash in between republishes the batch, so
// consumers must tolerate duplicates (message_id header).
//
// Example:
//
//	uow.Begin(ctx)
//	pending, err := uow.OutboxRepository().FetchPending(ctx, 100)
//	if err != nil {
//	    return err
//	}
//	if err = publisher.Publish(ctx, pending...); err != nil {
//	    return err // rolled back, retried on the next tick
//	}
//	for _, m := range pending {
//	    _ = uow.OutboxRepository().MarkSent(ctx, m.ID, now)
//	}
//	return uow.Commit(ctx)
type OutboxRepository interface {
	Add(ctx context.Context, messages ...outbox.Message) error

	// FetchPending returns up to limit unsent messages, oldest first. Inside a
	// transaction the rows stay locked, and concurrent relays skip them.
	FetchPending(ctx context.Context, limit int) ([]outbox.Message, error)

	// MarkSent fails with errs.ObjectNotFoundError for an unknown id.
	MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error
}

// EventPublisher delivers outbox messages to the broker. A broker failure is
// reported as errs.UnavailableError.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...outbox.Message) error
}
