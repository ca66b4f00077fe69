// Package cache holds the read-through catalog cache backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/storefront-service/internal/domain"
)

const (
	keyPrefix     = "catalog:"
	generationKey = keyPrefix + "generation"
)

// KeyAll is the cache key for the unfiltered product listing.
const KeyAll = "all"

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("catalog cache miss")

// Generation identifies a catalog version. InvalidateAll moves to a new
// generation, so a listing loaded before a write and stored afterwards lands
// under a generation no reader asks for.
type Generation int64

// CatalogCache stores product listings keyed by query. Set must be given the
// generation returned by the Get that missed.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.Product, Generation, error)
	Set(ctx context.Context, key string, gen Generation, products []domain.Product) error
	InvalidateAll(ctx context.Context) error
}

// CategoryKey returns the cache key for a category listing.
func CategoryKey(category string) string {
	return "category:" + category
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache returns a Redis-backed cache, or a no-op cache when the
// client is nil or the ttl is not positive.
func NewCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	if client == nil || ttl <= 0 {
		return NopCatalogCache{}
	}
	return &redisCatalogCache{client: client, ttl: ttl}
}

func entryKey(gen Generation, key string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, gen, key)
}

func (c *redisCatalogCache) generation(ctx context.Context) (Generation, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return Generation(gen), nil
}

func (c *redisCatalogCache) Get(ctx context.Context, key string) ([]domain.Product, Generation, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}
	raw, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, ErrMiss
	}
	if err != nil {
		return nil, gen, err
	}
	products := []domain.Product{}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, gen, err
	}
	return products, gen, nil
}

func (c *redisCatalogCache) Set(ctx context.Context, key string, gen Generation, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(gen, key), raw, c.ttl).Err()
}

// InvalidateAll starts a new generation. Entries of older generations are
// never read again and expire with their ttl.
func (c *redisCatalogCache) InvalidateAll(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

// NopCatalogCache never stores anything.
type NopCatalogCache struct{}

func (NopCatalogCache) Get(context.Context, string) ([]domain.Product, Generation, error) {
	return nil, 0, ErrMiss
}

func (NopCatalogCache) Set(context.Context, string, Generation, []domain.Product) error { return nil }

func (NopCatalogCache) InvalidateAll(context.Context) error { return nil }
