package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

func TestAddToCart_MergesDuplicateProduct(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewCartService(st, st)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p.ID, 1)
	require.NoError(t, err)
	line, err := svc.AddToCart(ctx, "u1", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "30", cart.Items[0].Subtotal.String())
}

func TestAddToCart_QuantityRules(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewCartService(st, st)
	ctx := context.Background()

	line, err := svc.AddToCart(ctx, "", p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, GuestUserID, line.UserID)

	_, err = svc.AddToCart(ctx, "u1", p.ID, -1)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	_, err = svc.AddToCart(ctx, "u1", "missing", 1)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetCart_Totals(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		qty      int
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{"free shipping above threshold", "30.00", 2, "60", "7.8", "0", "67.8"},
		{"threshold itself pays shipping", "25.00", 2, "50", "6.5", "9.99", "66.49"},
		{"small order", "19.99", 1, "19.99", "2.6", "9.99", "32.58"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memory.New()
			p := addProduct(t, st, "p", tt.price)
			svc := NewCartService(st, st)
			ctx := context.Background()

			_, err := svc.AddToCart(ctx, "u1", p.ID, tt.qty)
			require.NoError(t, err)

			cart, err := svc.GetCart(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, cart.Totals.Subtotal.String())
			assert.Equal(t, tt.tax, cart.Totals.Tax.String())
			assert.Equal(t, tt.shipping, cart.Totals.Shipping.String())
			assert.Equal(t, tt.total, cart.Totals.Total.String())
			assert.Equal(t, tt.qty, cart.Totals.ItemCount)
		})
	}
}

func TestGetCart_SubtotalIgnoresInsertionOrder(t *testing.T) {
	ctx := context.Background()

	build := func(order []int) string {
		st := memory.New()
		prices := []string{"12.49", "3.10", "44.00"}
		ids := make([]string, len(prices))
		for i, price := range prices {
			ids[i] = addProduct(t, st, "p"+price, price).ID
		}
		svc := NewCartService(st, st)
		for _, i := range order {
			_, err := svc.AddToCart(ctx, "u1", ids[i], i+1)
			require.NoError(t, err)
		}
		cart, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		return cart.Totals.Subtotal.String()
	}

	assert.Equal(t, build([]int{0, 1, 2}), build([]int{2, 0, 1}))
}

func TestGetCart_EmptyAndDangling(t *testing.T) {
	st := memory.New()
	svc := NewCartService(st, st)
	ctx := context.Background()

	cart, err := svc.GetCart(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Totals.Total.IsZero())
	assert.True(t, cart.Totals.Shipping.IsZero())

	// a cart line whose product vanished is skipped
	p := addProduct(t, st, "real", "5.00")
	_, err = svc.AddToCart(ctx, "u1", p.ID, 1)
	require.NoError(t, err)
	_, err = st.AddCartItem(ctx, &models.CartItem{ID: models.NewID(), UserID: "u1", ProductID: "gone", Quantity: 2})
	require.NoError(t, err)

	cart, err = svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "5", cart.Totals.Subtotal.String())
}

func TestUpdateQuantity(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewCartService(st, st)
	ctx := context.Background()

	line, err := svc.AddToCart(ctx, "u1", p.ID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, line.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = svc.UpdateQuantity(ctx, line.ID, 0)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, "missing", 1)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestRemoveAndClear(t *testing.T) {
	st := memory.New()
	p1 := addProduct(t, st, "p1", "10.00")
	p2 := addProduct(t, st, "p2", "20.00")
	svc := NewCartService(st, st)
	ctx := context.Background()

	line, err := svc.AddToCart(ctx, "u1", p1.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "u1", p2.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "u2", p2.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, line.ID))
	assert.True(t, errors.Is(svc.RemoveItem(ctx, line.ID), store.ErrNotFound))

	require.NoError(t, svc.ClearCart(ctx, "u1"))
	require.NoError(t, svc.ClearCart(ctx, "u1"))

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	other, err := svc.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other.Items, 1)
}
