package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "")
	t.Cleanup(func() { client.Close() })
	return NewProductCache(client, time.Hour), mr
}

func testProduct() *models.Product {
	orig := decimal.RequireFromString("24.99")
	return &models.Product{
		ID:            "p1",
		Slug:          "spigen-liquid-air-case",
		Name:          "Spigen Liquid Air Case",
		Price:         decimal.RequireFromString("19.99"),
		OriginalPrice: &orig,
		IsOnSale:      true,
	}
}

func TestProductCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	p := testProduct()

	require.NoError(t, cache.CacheProduct(ctx, p))

	byID, err := cache.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, byID.Name)
	assert.True(t, p.Price.Equal(byID.Price))
	require.NotNil(t, byID.OriginalPrice)
	assert.True(t, p.OriginalPrice.Equal(*byID.OriginalPrice))

	bySlug, err := cache.GetProductBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, "p1", bySlug.ID)

	ttl := mr.TTL(productKey("p1"))
	assert.Equal(t, time.Hour, ttl)
}

func TestProductCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.GetProduct(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	_, err = cache.GetProductBySlug(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestProductCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.CacheProduct(ctx, testProduct()))
	mr.FastForward(2 * time.Hour)

	_, err := cache.GetProduct(ctx, "p1")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestProductCache_RemoveProduct(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	p := testProduct()

	require.NoError(t, cache.CacheProduct(ctx, p))
	require.NoError(t, cache.RemoveProduct(ctx, p))

	_, err := cache.GetProductBySlug(ctx, p.Slug)
	assert.True(t, errors.Is(err, ErrCacheMiss))

	ids, err := cache.RecentProductIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProductCache_RecentProductIDs(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	products := []models.Product{*testProduct(), *testProduct(), *testProduct()}
	products[1].ID, products[1].Slug = "p2", "two"
	products[2].ID, products[2].Slug = "p3", "three"
	require.NoError(t, cache.CacheProducts(ctx, products))
	require.NoError(t, cache.CacheProduct(ctx, &products[0]))

	ids, err := cache.RecentProductIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "")
	assert.Error(t, err)
}
