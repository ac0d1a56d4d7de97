// Package ports declares the contracts the order core needs from the outside world:
// order persistence, catalog lookups, the event outbox and its publisher.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their lines.
type OrderRepository interface {
	// NextIdentity hands out the identifier for a new order.
	NextIdentity() kernel.UUID

	// Add persists a new order and all its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get that also locks the order until the surrounding
	// transaction ends. Mutating handlers read through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByOwner returns the orders of one account, oldest first.
	ListByOwner(ctx context.Context, owner kernel.UUID) ([]*order.Order, error)

	// ListAll returns every order, oldest first.
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ReplaceLines swaps the stored lines and total for the aggregate's current
	// ones in a single step. It fails with a status conflict when the stored
	// order is no longer Pending.
	ReplaceLines(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus stores the aggregate's current status only if the stored
	// status still equals expected; otherwise it fails with a status conflict.
	//
	// Example:
	//   prev := o.Status()
	//   if err := o.Pay(principal); err != nil {
	//       return err
	//   }
	//   err := repo.UpdateStatus(ctx, o, prev)
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
