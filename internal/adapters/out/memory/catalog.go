package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Catalog is a mutable product table used when no catalog database is configured.
type Catalog struct {
	mu    sync.RWMutex
	items map[catalog.ProductID]catalog.Item
}

func NewCatalog(items ...catalog.Item) *Catalog {
	c := &Catalog{items: make(map[catalog.ProductID]catalog.Item, len(items))}
	c.Put(items...)
	return c
}

// Put adds or replaces products. Orders keep the price they captured.
func (c *Catalog) Put(items ...catalog.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		c.items[item.ID] = item
	}
}

func (c *Catalog) Remove(id catalog.ProductID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

func (c *Catalog) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return catalog.Item{}, err
	}
	if err := ctx.Err(); err != nil {
		return catalog.Item{}, errs.NewUnavailableErrorWithCause("catalog", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return catalog.Item{}, errs.NewObjectNotFoundError("productId", int64(id))
	}
	return item, nil
}

type seedProduct struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// LoadCatalog reads a JSON array of products:
//
//	[{"id": 1, "name": "Phalaenopsis", "url": "...", "price": "10.00", "category": "Moth"}]
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var seeds []seedProduct
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	items := make([]catalog.Item, 0, len(seeds))
	for i, s := range seeds {
		price, err := kernel.NewMoney(s.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		item, err := catalog.NewItem(catalog.ProductID(s.ID), price, s.Name, s.URL, s.Category)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		items = append(items, item)
	}
	return NewCatalog(items...), nil
}
