package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rajasharmaa/dttt/internal/domain"
)

const productKeyPrefix = "product:"

// ProductCache caches individual products in Redis. The catalog is read-only
// here, so entries simply age out on TTL.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// GetProduct returns the cached product, or (nil, nil) on a cache miss.
func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKeyPrefix+product.ID.Hex(), data, c.ttl).Err()
}
