package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	redisclient "github.com/redis/go-redis/v9"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// ErrCacheMiss is returned when a key is not cached
var ErrCacheMiss = errors.New("cache miss")

const recentKey = "products:recent"

// ProductCache keeps products as JSON under product:{id} with a slug:{slug}
// mapping for slug lookups
type ProductCache struct {
	client *redisclient.Client
	ttl    time.Duration
}

func NewProductCache(client *redisclient.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func slugKey(slug string) string {
	return fmt.Sprintf("slug:%s", slug)
}

func (c *ProductCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	productJSON, err := c.client.Get(ctx, productKey(id)).Result()
	if errors.Is(err, redisclient.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %s", id)
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal product")
	}
	return &product, nil
}

func (c *ProductCache) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	productID, err := c.client.Get(ctx, slugKey(slug)).Result()
	if errors.Is(err, redisclient.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get slug %s", slug)
	}
	return c.GetProduct(ctx, productID)
}

// CacheProduct stores the product, its slug mapping and its place in the
// recent list in one transaction
func (c *ProductCache) CacheProduct(ctx context.Context, product *models.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal product %s", product.ID)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, productKey(product.ID), productJSON, c.ttl)
	pipe.Set(ctx, slugKey(product.Slug), product.ID, c.ttl)
	pipe.LRem(ctx, recentKey, 0, product.ID)
	pipe.LPush(ctx, recentKey, product.ID)
	pipe.LTrim(ctx, recentKey, 0, 99)
	pipe.Expire(ctx, recentKey, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to execute Redis pipeline for product %s", product.ID)
	}
	return nil
}

// CacheProducts warms the cache with every product given
func (c *ProductCache) CacheProducts(ctx context.Context, products []models.Product) error {
	for i := range products {
		if err := c.CacheProduct(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveProduct drops the product and its slug mapping
func (c *ProductCache) RemoveProduct(ctx context.Context, product *models.Product) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, productKey(product.ID))
	pipe.Del(ctx, slugKey(product.Slug))
	pipe.LRem(ctx, recentKey, 0, product.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to remove product %s from Redis cache", product.ID)
	}
	return nil
}

// RecentProductIDs lists the most recently cached product ids, newest first
func (c *ProductCache) RecentProductIDs(ctx context.Context, limit int64) ([]string, error) {
	ids, err := c.client.LRange(ctx, recentKey, 0, limit-1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list recent products")
	}
	return ids, nil
}
