// Package pgerr maps PostgreSQL driver failures onto the errs taxonomy.
package pgerr

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

// Classify wraps transient failures (lock contention, timeouts, refused
// connections) in errs.UnavailableError so callers can retry. Anything else is
// returned unchanged.
func Classify(resource string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return errs.NewUnavailableErrorWithCause(resource, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return errs.NewUnavailableErrorWithCause(resource, err)
	}

	return err
}
