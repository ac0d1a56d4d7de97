package memory

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) NextIdentity() kernel.UUID {
	return kernel.NewUUID()
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.stage(changeSet{
		orders: []orderOp{{kind: opInsert, rec: recordOf(aggregate)}},
	}, aggregate)
}

func (r *orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewUnavailableErrorWithCause(resource, err)
	}
	rec, ok := r.uow.read(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return rec.restore()
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := r.uow.lock(ctx, id); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *orderRepository) ListByOwner(ctx context.Context, owner kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, func(rec record) bool { return rec.owner.IsEqual(owner) })
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, func(record) bool { return true })
}

func (r *orderRepository) ReplaceLines(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, ok := r.uow.read(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}
	if stored.status != order.Pending {
		return errs.NewStatusConflictError("order", stored.status.String(), "editable")
	}
	return r.uow.stage(changeSet{
		orders: []orderOp{{kind: opReplaceLines, rec: recordOf(aggregate)}},
	}, aggregate)
}

func (r *orderRepository) UpdateStatus(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, ok := r.uow.read(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}
	if stored.status != expected {
		return errs.NewStatusConflictError("order", stored.status.String(), "updatable from "+expected.String())
	}
	return r.uow.stage(changeSet{
		orders: []orderOp{{kind: opUpdateStatus, rec: recordOf(aggregate), expected: expected}},
	}, aggregate)
}

func (r *orderRepository) list(ctx context.Context, keep func(record) bool) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewUnavailableErrorWithCause(resource, err)
	}
	records := r.uow.store.list(keep)
	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		o, err := rec.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
