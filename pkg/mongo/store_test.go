package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/seed"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

// newIntegrationStore connects to MONGODB_TEST_URI with a throwaway database
func newIntegrationStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := Connect(ctx, uri, "storefront_test_"+models.NewID()[:8])
	require.NoError(t, err)
	require.NoError(t, st.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = st.db.Drop(ctx)
		_ = st.Close(ctx)
	})
	return st
}

func TestStore_SeededFilter(t *testing.T) {
	st := newIntegrationStore(t)
	ctx := context.Background()

	_, err := seed.Load(ctx, st)
	require.NoError(t, err)

	onSale := true
	products, err := st.ListProducts(ctx, models.ProductFilter{IsOnSale: &onSale})
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "google-pixel-8-pro", products[0].Slug)

	err = st.CreateProduct(ctx, &products[0])
	assert.True(t, errors.Is(err, store.ErrConflict))
}

func TestStore_CartMergeAndFavorites(t *testing.T) {
	st := newIntegrationStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := st.AddCartItem(ctx, &models.CartItem{ID: "c1", UserID: "u1", ProductID: "p1", Quantity: 1, CreatedAt: now})
	require.NoError(t, err)
	line, err := st.AddCartItem(ctx, &models.CartItem{ID: "c2", UserID: "u1", ProductID: "p1", Quantity: 2, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "c1", line.ID)
	assert.Equal(t, 3, line.Quantity)

	first, err := st.AddFavorite(ctx, &models.Favorite{ID: "f1", UserID: "u1", ProductID: "p1", CreatedAt: now})
	require.NoError(t, err)
	second, err := st.AddFavorite(ctx, &models.Favorite{ID: "f2", UserID: "u1", ProductID: "p1", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	removed, err := st.RemoveFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = st.RemoveFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_UpdateOrder(t *testing.T) {
	st := newIntegrationStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.CreateOrder(ctx, &models.Order{
		ID:        "o1",
		UserID:    "u1",
		Status:    models.StatusPending,
		Items:     []models.OrderItem{{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 1}},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	trk := "TRK1"
	updated, err := st.UpdateOrder(ctx, "o1", func(o *models.Order) error {
		o.ApplyStatus(models.StatusShipped, &trk, now.Add(time.Second))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)

	found, err := st.FindOrderByTrackingNumber(ctx, "TRK1")
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)
}

func TestStore_ProductPriceBandsMatchMemoryBucketing(t *testing.T) {
	st := newIntegrationStore(t)
	ctx := context.Background()

	_, err := seed.Load(ctx, st)
	require.NoError(t, err)

	products, err := st.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	want := models.BucketPrices(products)

	got, err := st.ProductPriceBands(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Label, got[i].Label)
		assert.Equal(t, want[i].ProductCount, got[i].ProductCount)
		assert.True(t, want[i].MinPrice.Equal(got[i].MinPrice), want[i].Label)
		assert.True(t, want[i].MaxPrice.Equal(got[i].MaxPrice), want[i].Label)
	}
}

func TestStore_ListingsFollowCreatedAt(t *testing.T) {
	st := newIntegrationStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range []models.Product{
		{ID: "p3", Slug: "third", CreatedAt: base.Add(2 * time.Second)},
		{ID: "p2", Slug: "second", CreatedAt: base},
		{ID: "p1", Slug: "first", CreatedAt: base},
	} {
		p := p
		require.NoError(t, st.CreateProduct(ctx, &p))
	}
	products, err := st.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)

	for _, c := range []models.Category{
		{ID: "c2", Slug: "later", CreatedAt: base.Add(time.Second)},
		{ID: "c1", Slug: "earlier", CreatedAt: base},
	} {
		c := c
		require.NoError(t, st.CreateCategory(ctx, &c))
	}
	categories, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "earlier", categories[0].Slug)
	assert.Equal(t, "later", categories[1].Slug)
}
