// Package resilience bounds catalog lookups: every call gets a deadline and
// runs through a circuit breaker. A timeout or an open breaker surfaces as
// errs.UnavailableError, which callers may retry.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
)

const resource = "catalog"

type Config struct {
	// CallTimeout bounds a single lookup.
	CallTimeout time.Duration
	// FailuresToTrip consecutive failures open the breaker.
	FailuresToTrip uint32
	// OpenFor is how long the breaker stays open before probing again.
	OpenFor time.Duration
}

func DefaultConfig() Config {
	return Config{
		CallTimeout:    2 * time.Second,
		FailuresToTrip: 5,
		OpenFor:        30 * time.Second,
	}
}

type GuardedCatalog struct {
	next    ports.CatalogLookup
	breaker *gobreaker.CircuitBreaker[catalog.Item]
	timeout time.Duration
}

func NewGuardedCatalog(next ports.CatalogLookup, cfg Config, logger *slog.Logger) *GuardedCatalog {
	logger = logger.With("component", "catalog_breaker")

	breaker := gobreaker.NewCircuitBreaker[catalog.Item](gobreaker.Settings{
		Name:        resource,
		MaxRequests: 1,
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailuresToTrip
		},
		// A missing product or a malformed id is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errs.ErrObjectNotFound) || errs.IsValidation(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &GuardedCatalog{
		next:    next,
		breaker: breaker,
		timeout: cfg.CallTimeout,
	}
}

func (g *GuardedCatalog) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	item, err := g.breaker.Execute(func() (catalog.Item, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return g.next.Resolve(callCtx, id)
	})

	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return catalog.Item{}, errs.NewUnavailableErrorWithCause(resource, err)
	case errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, errs.ErrUnavailable):
		return catalog.Item{}, errs.NewUnavailableErrorWithCause(resource, err)
	default:
		return catalog.Item{}, err
	}
}

// State reports the breaker state.
func (g *GuardedCatalog) State() gobreaker.State {
	return g.breaker.State()
}

// Check reports an open breaker as errs.UnavailableError. Half-open counts as
// healthy since a trial call is already allowed through.
func (g *GuardedCatalog) Check(_ context.Context) error {
	if state := g.State(); state == gobreaker.StateOpen {
		return errs.NewUnavailableErrorWithCause(resource, fmt.Errorf("circuit breaker is %s", state))
	}
	return nil
}
