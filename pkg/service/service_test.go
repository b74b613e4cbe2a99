package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/seed"
)

// seededStore returns a memory store loaded with the seed catalog
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.New()
	_, err := seed.Load(context.Background(), st)
	require.NoError(t, err)
	return st
}

// addProduct inserts a bare product with the given price into st
func addProduct(t *testing.T, st *memory.Store, slug, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:         models.NewID(),
		Slug:       slug,
		Name:       slug,
		CategoryID: "cat",
		Price:      decimal.RequireFromString(price),
		InStock:    true,
	}
	require.NoError(t, st.CreateProduct(context.Background(), p))
	return p
}

func ptr[T any](v T) *T {
	return &v
}
