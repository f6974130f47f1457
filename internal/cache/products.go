package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital-storefront/internal/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:products:"

type ProductCache interface {
	Get(ctx context.Context, key string) ([]*model.Product, bool, error)
	Set(ctx context.Context, key string, products []*model.Product, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type redisProductCache struct {
	rdb *redis.Client
}

// NewProductCache falls back to a no-op cache when rdb is nil.
func NewProductCache(rdb *redis.Client) ProductCache {
	if rdb == nil {
		return noopProductCache{}
	}
	return &redisProductCache{rdb: rdb}
}

func (c *redisProductCache) Get(ctx context.Context, key string) ([]*model.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var products []*model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode cached products: %w", err)
	}
	return products, true, nil
}

func (c *redisProductCache) Set(ctx context.Context, key string, products []*model.Product, ttl time.Duration) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisProductCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}
	return c.rdb.Del(ctx, prefixed...).Err()
}

type noopProductCache struct{}

func (noopProductCache) Get(context.Context, string) ([]*model.Product, bool, error) {
	return nil, false, nil
}

func (noopProductCache) Set(context.Context, string, []*model.Product, time.Duration) error {
	return nil
}

func (noopProductCache) Invalidate(context.Context, ...string) error {
	return nil
}
