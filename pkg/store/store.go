// Package store declares the persistence ports of the storefront. The memory
// and mongo packages provide the implementations.
package store

import (
	"context"

	"github.com/pkg/errors"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type ProductRepository interface {
	// ListProducts returns the products matching filter in insertion order.
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	// CreateProduct fails with ErrConflict when the id or slug is taken.
	CreateProduct(ctx context.Context, product *models.Product) error
	// ProductPriceBands groups the catalog by models.PriceBandBounds.
	ProductPriceBands(ctx context.Context) ([]models.PriceBand, error)
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CartRepository interface {
	ListCartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	// AddCartItem inserts item, or atomically adds item.Quantity to the
	// existing line for the same user and product. It returns the stored line.
	AddCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id string) error
	ClearCart(ctx context.Context, userID string) error
}

type FavoriteRepository interface {
	ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
	// AddFavorite is idempotent: an existing pair is returned unchanged.
	AddFavorite(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, productID string) (bool, error)
	HasFavorite(ctx context.Context, userID, productID string) (bool, error)
}

type OrderRepository interface {
	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	FindOrderByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Order, error)
	// CreateOrder persists the order and its items in one atomic write.
	CreateOrder(ctx context.Context, order *models.Order) error
	// UpdateOrder loads the order, applies mutate and saves the result.
	// An error from mutate aborts the update and is returned as is.
	UpdateOrder(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error)
}

type ContactRepository interface {
	CreateContactMessage(ctx context.Context, message *models.ContactMessage) error
}

// Store is the full set of repositories a backend provides
type Store interface {
	ProductRepository
	CategoryRepository
	CartRepository
	FavoriteRepository
	OrderRepository
	ContactRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
