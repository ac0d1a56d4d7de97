package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups order and outbox writes into one atomic change.
// Repositories used outside Begin/Commit write immediately.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes every change done through the repositories visible at once.
	// Events recorded by tracked aggregates are written to the outbox first.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit is a no-op error.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository

	// OutboxRepository returns an outbox bound to the current transaction.
	OutboxRepository() OutboxRepository
}
