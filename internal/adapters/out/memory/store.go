// Package memory keeps orders, outbox messages and the catalog in process
// memory. It backs STORAGE_DRIVER=memory and the end-to-end lifecycle tests.
//
// Writes made inside a unit of work are staged and applied on Commit under a
// single lock, after every staged status precondition is checked again, so
// readers never observe a half-applied change. GetForUpdate takes a per-order
// lock that is held until Commit or Rollback, mirroring a row lock.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/pkg/errs"
)

const resource = "order store"

// record is the stored form of an order. Aggregates are rebuilt from it on
// every read so callers never share mutable state.
type record struct {
	id        kernel.UUID
	owner     kernel.UUID
	lines     []order.Line
	total     kernel.Money
	createdAt time.Time
	status    order.Status
}

func recordOf(o *order.Order) record {
	return record{
		id:        o.ID(),
		owner:     o.Owner(),
		lines:     o.Lines(),
		total:     o.Total(),
		createdAt: o.CreatedAt(),
		status:    o.Status(),
	}
}

func (r record) restore() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.owner, r.lines, r.total, r.createdAt, r.status)
}

type opKind int

const (
	opInsert opKind = iota
	opReplaceLines
	opUpdateStatus
)

type orderOp struct {
	kind     opKind
	rec      record
	expected order.Status
}

type sentMark struct {
	id     kernel.UUID
	sentAt time.Time
}

// changeSet is everything one unit of work wants to apply at once.
type changeSet struct {
	orders   []orderOp
	messages []outbox.Message
	sent     []sentMark
}

func (c *changeSet) empty() bool {
	return len(c.orders) == 0 && len(c.messages) == 0 && len(c.sent) == 0
}

// Store holds the committed state shared by all units of work.
type Store struct {
	mu       sync.RWMutex
	orders   map[kernel.UUID]record
	messages []outbox.Message
	locks    map[kernel.UUID]chan struct{}
}

func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]record),
		locks:  make(map[kernel.UUID]chan struct{}),
	}
}

func (s *Store) get(id kernel.UUID) (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[id]
	return rec, ok
}

func (s *Store) list(keep func(record) bool) []record {
	s.mu.RLock()
	out := make([]record, 0, len(s.orders))
	for _, rec := range s.orders {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b record) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return strings.Compare(a.id.String(), b.id.String())
	})
	return out
}

// lock blocks until the caller owns the order lock or ctx is done.
func (s *Store) lock(ctx context.Context, id kernel.UUID) (chan struct{}, error) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[id] = l
	}
	s.mu.Unlock()

	select {
	case l <- struct{}{}:
		return l, nil
	case <-ctx.Done():
		return nil, errs.NewUnavailableErrorWithCause(resource, ctx.Err())
	}
}

// apply checks every staged precondition against the committed state and the
// effects of earlier operations in the same set, then applies all or nothing.
func (s *Store) apply(changes changeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := make(map[kernel.UUID]record, len(changes.orders))
	current := func(id kernel.UUID) (record, bool) {
		if rec, ok := working[id]; ok {
			return rec, true
		}
		rec, ok := s.orders[id]
		return rec, ok
	}

	for _, op := range changes.orders {
		stored, exists := current(op.rec.id)
		switch op.kind {
		case opInsert:
			if exists {
				return errs.NewValueIsInvalidErrorWithCause("orderId",
					fmt.Errorf("order %s already exists", op.rec.id))
			}
			working[op.rec.id] = op.rec
		case opReplaceLines:
			if !exists {
				return errs.NewObjectNotFoundError("orderId", op.rec.id.String())
			}
			if stored.status != order.Pending {
				return errs.NewStatusConflictError("order", stored.status.String(), "editable")
			}
			stored.lines = op.rec.lines
			stored.total = op.rec.total
			working[op.rec.id] = stored
		case opUpdateStatus:
			if !exists {
				return errs.NewObjectNotFoundError("orderId", op.rec.id.String())
			}
			if stored.status != op.expected {
				return errs.NewStatusConflictError("order", stored.status.String(), "updatable from "+op.expected.String())
			}
			stored.status = op.rec.status
			working[op.rec.id] = stored
		}
	}

	index := make(map[kernel.UUID]int, len(s.messages))
	for i, m := range s.messages {
		index[m.ID] = i
	}
	for _, mark := range changes.sent {
		if _, ok := index[mark.id]; !ok {
			return errs.NewObjectNotFoundError("outbox message", mark.id.String())
		}
	}

	for id, rec := range working {
		s.orders[id] = rec
	}
	for _, mark := range changes.sent {
		sentAt := mark.sentAt
		s.messages[index[mark.id]].SentAt = &sentAt
	}
	s.messages = append(s.messages, changes.messages...)
	return nil
}

func (s *Store) hasMessage(id kernel.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.ID.IsEqual(id) {
			return true
		}
	}
	return false
}

func (s *Store) pendingMessages(limit int) []outbox.Message {
	if limit <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]outbox.Message, 0, limit)
	for _, m := range s.messages {
		if m.IsSent() {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}
