package services

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/order"
)

// CatalogResolver resolves a product to its current catalog state.
type CatalogResolver interface {
	Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error)
}

// PricedLines is the outcome of pricing a batch of line requests.
// Items holds the catalog state every line was priced against, keyed by product.
type PricedLines struct {
	Lines []order.Line
	Items map[catalog.ProductID]catalog.Item
}

// LinePricer prices line requests against the catalog.
//
// Example:
//
//	pricer := services.NewLinePricer(catalogLookup)
//	priced, err := pricer.Price(ctx, []order.LineRequest{{ProductID: 42, Quantity: 2}})
//	if err != nil {
//	    // validation, not found or unavailable
//	}
//	o, err := order.NewOrder(id, principal, priced.Lines, time.Now())
type LinePricer struct {
	catalog CatalogResolver
}

func NewLinePricer(catalog CatalogResolver) LinePricer {
	return LinePricer{catalog: catalog}
}

// Price validates every request before any lookup, then resolves products in
// request order. The first failed resolution fails the whole batch; no partial
// result is returned. A product requested twice is resolved once.
func (p LinePricer) Price(ctx context.Context, requests []order.LineRequest) (PricedLines, error) {
	if err := order.ValidateLineRequests(requests); err != nil {
		return PricedLines{}, err
	}

	items := make(map[catalog.ProductID]catalog.Item, len(requests))
	lines := make([]order.Line, 0, len(requests))

	for i, r := range requests {
		item, ok := items[r.ProductID]
		if !ok {
			resolved, err := p.catalog.Resolve(ctx, r.ProductID)
			if err != nil {
				return PricedLines{}, fmt.Errorf("line %d: %w", i, err)
			}
			item = resolved
			items[r.ProductID] = item
		}

		line, err := order.NewLine(r.ProductID, r.Quantity, item.UnitPrice)
		if err != nil {
			return PricedLines{}, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, line)
	}

	return PricedLines{Lines: lines, Items: items}, nil
}
