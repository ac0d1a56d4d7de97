// Package queries contains read operations over orders. Queries never open a
// unit of work; they read committed state and assemble views from it.
package queries

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

type (
	// OrderReader is the read side of the order store.
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
		ListByOwner(ctx context.Context, owner kernel.UUID) ([]*order.Order, error)
		ListAll(ctx context.Context) ([]*order.Order, error)
	}

	// CatalogLookup resolves the live display attributes of products.
	CatalogLookup interface {
		Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error)
	}
)
