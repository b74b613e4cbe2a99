package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

func TestFavorites_AddIsIdempotent(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewFavoriteService(st, st)
	ctx := context.Background()

	first, err := svc.AddFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	second, err := svc.AddFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, p.Slug, entries[0].Product.Slug)
}

func TestFavorites_RemoveThenCheck(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewFavoriteService(st, st)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)

	ok, err := svc.IsFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := svc.RemoveFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	ok, err = svc.IsFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err = svc.RemoveFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavorites_UnknownProduct(t *testing.T) {
	st := memory.New()
	svc := NewFavoriteService(st, st)

	_, err := svc.AddFavorite(context.Background(), "u1", "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestFavorites_ScopedPerUser(t *testing.T) {
	st := memory.New()
	p := addProduct(t, st, "p1", "10.00")
	svc := NewFavoriteService(st, st)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, "u1", p.ID)
	require.NoError(t, err)

	ok, err := svc.IsFavorite(ctx, "u2", p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := svc.ListFavorites(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
