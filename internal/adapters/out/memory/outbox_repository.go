package memory

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/pkg/errs"
)

type outboxRepository struct {
	uow *UnitOfWork
}

func (r *outboxRepository) Add(_ context.Context, messages ...outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.uow.stage(changeSet{messages: messages}, nil)
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewUnavailableErrorWithCause("outbox", err)
	}
	return r.uow.store.pendingMessages(limit), nil
}

func (r *outboxRepository) MarkSent(_ context.Context, id kernel.UUID, sentAt time.Time) error {
	if !r.uow.store.hasMessage(id) {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return r.uow.stage(changeSet{sent: []sentMark{{id: id, sentAt: sentAt}}}, nil)
}
