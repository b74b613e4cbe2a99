// Package memory is a volatile, insertion-ordered implementation of store.Store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

// Store keeps every collection in maps guarded by a single lock. Each
// collection also records insertion order so listings are stable.
type Store struct {
	mu sync.RWMutex

	products     map[string]*models.Product
	productOrder []string

	categories    map[string]*models.Category
	categoryOrder []string

	cartItems map[string]*models.CartItem
	cartOrder []string

	favorites     map[string]*models.Favorite
	favoriteOrder []string

	orders     map[string]*models.Order
	orderOrder []string

	contactMessages []models.ContactMessage
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		products:   make(map[string]*models.Product),
		categories: make(map[string]*models.Category),
		cartItems:  make(map[string]*models.CartItem),
		favorites:  make(map[string]*models.Favorite),
		orders:     make(map[string]*models.Order),
	}
}

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

// Products

func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.FilterProducts(s.snapshotProducts(), filter), nil
}

func (s *Store) ProductPriceBands(ctx context.Context) ([]models.PriceBand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.BucketPrices(s.snapshotProducts()), nil
}

// snapshotProducts expects s.mu to be held
func (s *Store) snapshotProducts() []models.Product {
	out := make([]models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, cloneProduct(s.products[id]))
	}
	return out
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.Wrapf(store.ErrNotFound, "product %s", id)
	}
	clone := cloneProduct(p)
	return &clone, nil
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.productOrder {
		if p := s.products[id]; p.Slug == slug {
			clone := cloneProduct(p)
			return &clone, nil
		}
	}
	return nil, errors.Wrapf(store.ErrNotFound, "product slug %s", slug)
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return errors.Wrapf(store.ErrConflict, "product id %s", product.ID)
	}
	for _, p := range s.products {
		if p.Slug == product.Slug {
			return errors.Wrapf(store.ErrConflict, "product slug %s", product.Slug)
		}
	}

	clone := cloneProduct(product)
	s.products[product.ID] = &clone
	s.productOrder = append(s.productOrder, product.ID)
	return nil
}

// Categories

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		out = append(out, cloneCategory(s.categories[id]))
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, errors.Wrapf(store.ErrNotFound, "category %s", id)
	}
	clone := cloneCategory(c)
	return &clone, nil
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.categoryOrder {
		if c := s.categories[id]; c.Slug == slug {
			clone := cloneCategory(c)
			return &clone, nil
		}
	}
	return nil, errors.Wrapf(store.ErrNotFound, "category slug %s", slug)
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[category.ID]; exists {
		return errors.Wrapf(store.ErrConflict, "category id %s", category.ID)
	}
	for _, c := range s.categories {
		if c.Slug == category.Slug {
			return errors.Wrapf(store.ErrConflict, "category slug %s", category.Slug)
		}
	}

	clone := cloneCategory(category)
	s.categories[category.ID] = &clone
	s.categoryOrder = append(s.categoryOrder, category.ID)
	return nil
}

// Cart

func (s *Store) ListCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CartItem
	for _, id := range s.cartOrder {
		if item := s.cartItems[id]; item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *Store) AddCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.cartOrder {
		existing := s.cartItems[id]
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			clone := *existing
			return &clone, nil
		}
	}

	clone := *item
	s.cartItems[item.ID] = &clone
	s.cartOrder = append(s.cartOrder, item.ID)
	out := clone
	return &out, nil
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, errors.Wrapf(store.ErrNotFound, "cart item %s", id)
	}
	item.Quantity = quantity
	clone := *item
	return &clone, nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartItems[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "cart item %s", id)
	}
	delete(s.cartItems, id)
	s.cartOrder = removeID(s.cartOrder, id)
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cartOrder[:0]
	for _, id := range s.cartOrder {
		if s.cartItems[id].UserID == userID {
			delete(s.cartItems, id)
			continue
		}
		kept = append(kept, id)
	}
	s.cartOrder = kept
	return nil
}

// Favorites

func (s *Store) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Favorite
	for _, id := range s.favoriteOrder {
		if fav := s.favorites[id]; fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

func (s *Store) AddFavorite(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findFavorite(favorite.UserID, favorite.ProductID); existing != nil {
		clone := *existing
		return &clone, nil
	}

	clone := *favorite
	s.favorites[favorite.ID] = &clone
	s.favoriteOrder = append(s.favoriteOrder, favorite.ID)
	out := clone
	return &out, nil
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findFavorite(userID, productID)
	if existing == nil {
		return false, nil
	}
	delete(s.favorites, existing.ID)
	s.favoriteOrder = removeID(s.favoriteOrder, existing.ID)
	return true, nil
}

func (s *Store) HasFavorite(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findFavorite(userID, productID) != nil, nil
}

// findFavorite expects s.mu to be held
func (s *Store) findFavorite(userID, productID string) *models.Favorite {
	for _, id := range s.favoriteOrder {
		if fav := s.favorites[id]; fav.UserID == userID && fav.ProductID == productID {
			return fav
		}
	}
	return nil
}

// Orders

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for i := len(s.orderOrder) - 1; i >= 0; i-- {
		if o := s.orders[s.orderOrder[i]]; o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errors.Wrapf(store.ErrNotFound, "order %s", id)
	}
	clone := cloneOrder(o)
	return &clone, nil
}

func (s *Store) FindOrderByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.orderOrder {
		if o := s.orders[id]; o.TrackingNumber != nil && *o.TrackingNumber == trackingNumber {
			clone := cloneOrder(o)
			return &clone, nil
		}
	}
	return nil, errors.Wrapf(store.ErrNotFound, "tracking number %s", trackingNumber)
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return errors.Wrapf(store.ErrConflict, "order id %s", order.ID)
	}
	clone := cloneOrder(order)
	s.orders[order.ID] = &clone
	s.orderOrder = append(s.orderOrder, order.ID)
	return nil
}

func (s *Store) UpdateOrder(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[id]
	if !ok {
		return nil, errors.Wrapf(store.ErrNotFound, "order %s", id)
	}

	working := cloneOrder(current)
	if err := mutate(&working); err != nil {
		return nil, err
	}

	saved := cloneOrder(&working)
	s.orders[id] = &saved
	return &working, nil
}

// Contact messages

func (s *Store) CreateContactMessage(ctx context.Context, message *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contactMessages = append(s.contactMessages, *message)
	return nil
}

// ContactMessages returns a copy of the stored messages
func (s *Store) ContactMessages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.ContactMessage(nil), s.contactMessages...)
}

func cloneOrder(o *models.Order) models.Order {
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	if o.TrackingNumber != nil {
		tn := *o.TrackingNumber
		clone.TrackingNumber = &tn
	}
	return clone
}

// cloneProduct deep copies the map, slice and pointer fields
func cloneProduct(p *models.Product) models.Product {
	clone := *p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		clone.OriginalPrice = &op
	}
	if p.Rating != nil {
		r := *p.Rating
		clone.Rating = &r
	}
	if p.Images != nil {
		clone.Images = append([]string(nil), p.Images...)
	}
	if p.Features != nil {
		clone.Features = append([]string(nil), p.Features...)
	}
	if p.Specifications != nil {
		clone.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			clone.Specifications[k] = v
		}
	}
	return clone
}

func cloneCategory(c *models.Category) models.Category {
	clone := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		clone.ParentID = &parent
	}
	return clone
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
