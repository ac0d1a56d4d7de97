package memory

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoTransaction = errors.New("memory: no transaction in progress")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
	now   func() time.Time
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, now: time.Now}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store: f.store,
		now:   f.now,
		held:  make(map[kernel.UUID]chan struct{}),
	}
}

// UnitOfWork stages writes until Commit. Without Begin every write is applied
// immediately. Not safe for concurrent use.
type UnitOfWork struct {
	store   *Store
	now     func() time.Time
	active  bool
	changes changeSet
	tracked []*order.Order
	held    map[kernel.UUID]chan struct{}
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit converts the events of tracked aggregates into outbox messages and
// applies them with the staged writes. On a failed precondition nothing is applied.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	defer uow.reset()

	if err := uow.drainEvents(); err != nil {
		return err
	}
	return uow.store.apply(uow.changes)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &outboxRepository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.changes = changeSet{}
	uow.tracked = nil
	for id, l := range uow.held {
		<-l
		delete(uow.held, id)
	}
}

func (uow *UnitOfWork) drainEvents() error {
	occurredAt := uow.now().UTC()
	for _, o := range uow.tracked {
		for _, e := range o.PullEvents() {
			m, err := outbox.NewOrderMessage(e, occurredAt)
			if err != nil {
				return err
			}
			uow.changes.messages = append(uow.changes.messages, m)
		}
	}
	uow.tracked = uow.tracked[:0]
	return nil
}

// stage queues changes, or applies them right away outside a transaction.
func (uow *UnitOfWork) stage(changes changeSet, aggregate *order.Order) error {
	if aggregate != nil {
		uow.tracked = append(uow.tracked, aggregate)
	}
	uow.changes.orders = append(uow.changes.orders, changes.orders...)
	uow.changes.messages = append(uow.changes.messages, changes.messages...)
	uow.changes.sent = append(uow.changes.sent, changes.sent...)
	if uow.active {
		return nil
	}

	defer uow.reset()
	if err := uow.drainEvents(); err != nil {
		return err
	}
	return uow.store.apply(uow.changes)
}

// lock takes the order lock once per unit of work.
func (uow *UnitOfWork) lock(ctx context.Context, id kernel.UUID) error {
	if !uow.active {
		return nil
	}
	if _, ok := uow.held[id]; ok {
		return nil
	}
	l, err := uow.store.lock(ctx, id)
	if err != nil {
		return err
	}
	uow.held[id] = l
	return nil
}

// read returns the order as this unit of work sees it: staged writes first.
func (uow *UnitOfWork) read(id kernel.UUID) (record, bool) {
	rec, ok := uow.store.get(id)
	for _, op := range uow.changes.orders {
		if !op.rec.id.IsEqual(id) {
			continue
		}
		switch op.kind {
		case opInsert:
			rec, ok = op.rec, true
		case opReplaceLines:
			rec.lines, rec.total = op.rec.lines, op.rec.total
		case opUpdateStatus:
			rec.status = op.rec.status
		}
	}
	return rec, ok
}
