package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
)

// CatalogLookup resolves products to their current catalog state.
// Unknown products yield errs.ObjectNotFoundError, transport failures errs.UnavailableError.
//
// Implementations stack as decorators. Pricing must see the current price,
// so it reads through the breaker only; views may read through the Redis cache.
//
// Example:
//
//	var live ports.CatalogLookup = resilience.NewGuardedCatalog(repo, cfg, logger)
//	var display ports.CatalogLookup = catalogcache.NewRedisCatalog(client, live, ttl, logger)
//
//	item, err := live.Resolve(ctx, productID)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // reject the line
//	case errs.IsRetryable(err):
//	    // ask the caller to retry
//	}
type CatalogLookup interface {
	Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error)
}
