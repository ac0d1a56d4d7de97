// Package catalogcache puts a Redis read-through cache in front of a catalog lookup.
// Only resolved products are cached; an unknown product is asked again next
// time so a product added to the catalog becomes orderable immediately.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:product:"

// cachedItem is the JSON form stored in Redis.
type cachedItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type RedisCatalog struct {
	client  *redis.Client
	next    ports.CatalogLookup
	baseTTL time.Duration
	jitter  time.Duration
	logger  *slog.Logger
}

// NewRedisCatalog caches next for baseTTL plus up to a fifth of it as jitter,
// so entries written together do not expire together.
func NewRedisCatalog(client *redis.Client, next ports.CatalogLookup, baseTTL time.Duration, logger *slog.Logger) *RedisCatalog {
	return &RedisCatalog{
		client:  client,
		next:    next,
		baseTTL: baseTTL,
		jitter:  baseTTL / 5,
		logger:  logger.With("component", "catalog_cache"),
	}
}

// Resolve serves from Redis when it can. Redis failures are logged and the
// lookup falls through to the wrapped catalog.
func (c *RedisCatalog) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return catalog.Item{}, err
	}

	item, err := c.get(ctx, id)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "catalog cache read failed", "product_id", int64(id), "error", err)
	}

	item, err = c.next.Resolve(ctx, id)
	if err != nil {
		return catalog.Item{}, err
	}

	if err = c.set(ctx, item); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "product_id", int64(id), "error", err)
	}
	return item, nil
}

func (c *RedisCatalog) get(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return catalog.Item{}, err
	}

	var cached cachedItem
	if err = json.Unmarshal(data, &cached); err != nil {
		return catalog.Item{}, fmt.Errorf("unmarshal cached product failed: %w", err)
	}

	price, err := kernel.MoneyFromString(cached.Price)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("cached product price: %w", err)
	}
	return catalog.NewItem(catalog.ProductID(cached.ID), price, cached.Name, cached.URL, cached.Category)
}

func (c *RedisCatalog) set(ctx context.Context, item catalog.Item) error {
	data, err := json.Marshal(cachedItem{
		ID:       int64(item.ID),
		Name:     item.Name,
		URL:      item.URL,
		Price:    item.UnitPrice.Amount().String(),
		Category: item.CategoryLabel,
	})
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	ttl := c.baseTTL
	if c.jitter > 0 {
		ttl += time.Duration(rand.Int63n(int64(c.jitter)))
	}
	if err = c.client.Set(ctx, cacheKey(item.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(id catalog.ProductID) string {
	return keyPrefix + id.String()
}
