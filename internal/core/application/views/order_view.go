// Package views assembles read models of orders for callers.
//
// A view mixes two kinds of data: the price and quantity captured on each
// line when it was created, and the product's current display attributes
// (name, url, category) looked up at read time.
package views

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

type OrderView struct {
	ID        kernel.UUID
	AccountID kernel.UUID
	Status    order.Status
	Total     kernel.Money
	CreatedAt time.Time
	Lines     []LineView
}

type LineView struct {
	ProductID catalog.ProductID
	Name      string
	URL       string
	Category  string
	Quantity  int
	UnitPrice kernel.Money
	Total     kernel.Money
}

// CatalogResolver resolves a product to its current catalog state.
type CatalogResolver interface {
	Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error)
}

// Assembler builds OrderView values.
type Assembler struct {
	catalog CatalogResolver
}

func NewAssembler(catalog CatalogResolver) Assembler {
	return Assembler{catalog: catalog}
}

// Assemble builds the view of o. Items already resolved by the caller are
// reused; other products are looked up. A product that no longer exists is
// shown with catalog.UnknownLabel instead of failing the read, but an
// unavailable catalog fails it.
func (a Assembler) Assemble(
	ctx context.Context,
	o *order.Order,
	known map[catalog.ProductID]catalog.Item,
) (OrderView, error) {
	if err := o.Validate(); err != nil {
		return OrderView{}, err
	}

	cache := make(map[catalog.ProductID]catalog.Item, len(known))
	for id, item := range known {
		cache[id] = item
	}
	return a.assemble(ctx, o, cache)
}

// Prefetch resolves every product on o's lines with the same fallback rules
// as Assemble. Passing the result to Assemble builds the view without further
// catalog calls, so callers can fail before committing a change rather than
// after it.
func (a Assembler) Prefetch(ctx context.Context, o *order.Order) (map[catalog.ProductID]catalog.Item, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	cache := make(map[catalog.ProductID]catalog.Item)
	for _, l := range o.Lines() {
		if _, err := a.lookup(ctx, l.ProductID(), cache); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

// AssembleAll builds views for orders, resolving each product at most once.
func (a Assembler) AssembleAll(ctx context.Context, orders []*order.Order) ([]OrderView, error) {
	cache := make(map[catalog.ProductID]catalog.Item)
	out := make([]OrderView, 0, len(orders))

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		v, err := a.assemble(ctx, o, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

func (a Assembler) assemble(
	ctx context.Context,
	o *order.Order,
	cache map[catalog.ProductID]catalog.Item,
) (OrderView, error) {
	lines := o.Lines()
	view := OrderView{
		ID:        o.ID(),
		AccountID: o.Owner(),
		Status:    o.Status(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt(),
		Lines:     make([]LineView, 0, len(lines)),
	}

	for _, l := range lines {
		item, err := a.lookup(ctx, l.ProductID(), cache)
		if err != nil {
			return OrderView{}, err
		}

		view.Lines = append(view.Lines, LineView{
			ProductID: l.ProductID(),
			Name:      item.Name,
			URL:       item.URL,
			Category:  item.Category(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Total:     l.Total(),
		})
	}

	return view, nil
}

func (a Assembler) lookup(
	ctx context.Context,
	id catalog.ProductID,
	cache map[catalog.ProductID]catalog.Item,
) (catalog.Item, error) {
	if item, ok := cache[id]; ok {
		return item, nil
	}

	item, err := a.catalog.Resolve(ctx, id)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		item = catalog.Item{ID: id, Name: catalog.UnknownLabel}
	case err != nil:
		return catalog.Item{}, err
	}

	cache[id] = item
	return item, nil
}
