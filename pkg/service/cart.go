package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

// GuestUserID is used whenever a request carries no user
const GuestUserID = "guest"

type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context, userID string) error
}

func NewCartService(cart store.CartRepository, products store.ProductRepository) CartService {
	return &cartService{cart: cart, products: products}
}

type cartService struct {
	cart     store.CartRepository
	products store.ProductRepository
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	userID = userOrGuest(userID)

	items, err := s.cart.ListCartItems(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart items")
	}

	lines := make([]models.CartLine, 0, len(items))
	priced := make([]models.PricedLine, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			log.WithFields(log.Fields{"cart_item_id": item.ID, "product_id": item.ProductID}).
				Debug("Skipping cart line for missing product")
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "load product %s", item.ProductID)
		}

		lines = append(lines, models.CartLine{
			CartItem: item,
			Product:  *product,
			Subtotal: models.LineSubtotal(product.Price, item.Quantity),
		})
		priced = append(priced, models.PricedLine{Price: product.Price, Quantity: item.Quantity})
	}

	return &models.Cart{
		UserID: userID,
		Items:  lines,
		Totals: models.CalculateTotals(priced),
	}, nil
}

func (s *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, invalidField(ErrInvalidQuantity, "quantity", "Quantity cannot be negative", "gte")
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		ID:        models.NewID(),
		UserID:    userOrGuest(userID),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.cart.AddCartItem(ctx, item)
	if err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}
	return stored, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, invalidField(ErrInvalidQuantity, "quantity", "Quantity must be at least 1", "min")
	}
	return s.cart.UpdateCartItemQuantity(ctx, itemID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, itemID string) error {
	return s.cart.DeleteCartItem(ctx, itemID)
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.cart.ClearCart(ctx, userOrGuest(userID)); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

func userOrGuest(userID string) string {
	if userID == "" {
		return GuestUserID
	}
	return userID
}
