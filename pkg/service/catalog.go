package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

var maxRating = decimal.NewFromInt(5)

// ProductCache is an optional read-through cache for single product lookups
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CacheProduct(ctx context.Context, product *models.Product) error
	RemoveProduct(ctx context.Context, product *models.Product) error
	RecentProductIDs(ctx context.Context, limit int64) ([]string, error)
}

type CatalogService interface {
	QueryProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListDeals(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	PriceBands(ctx context.Context) ([]models.PriceBand, error)
	RecentProductIDs(ctx context.Context, limit int64) ([]string, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListSubcategories(ctx context.Context, id string) ([]models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
}

// NewCatalogService builds the catalog engine. cache may be nil.
func NewCatalogService(products store.ProductRepository, categories store.CategoryRepository, cache ProductCache) CatalogService {
	return &catalogService{products: products, categories: categories, cache: cache}
}

type catalogService struct {
	products   store.ProductRepository
	categories store.CategoryRepository
	cache      ProductCache
}

func (s *catalogService) QueryProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return []models.Product{}, nil
	}
	products, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(ctx, id); err == nil {
			return product, nil
		}
	}

	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, product)
	return product, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProductBySlug(ctx, slug); err == nil {
			return product, nil
		}
	}

	product, err := s.products.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, product)
	return product, nil
}

// forget drops any cached entry keyed by the product's id or slug
func (s *catalogService) forget(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.RemoveProduct(ctx, product); err != nil {
		log.WithError(err).WithField("product_id", product.ID).Warn("Failed to evict product from cache")
	}
}

// remember stores product in the cache; failures only cost a future miss
func (s *catalogService) remember(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheProduct(ctx, product); err != nil {
		log.WithError(err).WithField("product_id", product.ID).Warn("Failed to cache product")
	}
}

func (s *catalogService) ListDeals(ctx context.Context) ([]models.Product, error) {
	onSale := true
	products, err := s.products.ListProducts(ctx, models.ProductFilter{IsOnSale: &onSale})
	if err != nil {
		return nil, errors.Wrap(err, "list deals")
	}

	deals := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsDeal() {
			deals = append(deals, p)
		}
	}
	return deals, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if !req.Price.IsPositive() {
		return nil, invalidField(nil, "price", "Price must be greater than zero", "gt")
	}
	if req.OriginalPrice != nil && !req.OriginalPrice.IsPositive() {
		return nil, invalidField(nil, "originalPrice", "Original price must be greater than zero", "gt")
	}
	if req.Rating != nil && (req.Rating.IsNegative() || req.Rating.GreaterThan(maxRating)) {
		return nil, invalidField(nil, "rating", "Rating must be between 0 and 5", "range")
	}

	product := req.ToProduct()
	if product.Slug == "" {
		return nil, invalidField(nil, "slug", "Slug cannot be derived from the name", "required")
	}
	if product.IsOnSale && !product.HasValidDiscount() {
		return nil, invalidField(nil, "originalPrice", "On-sale products need an original price above the price", "invalid_discount")
	}

	if _, err := s.categories.GetCategory(ctx, product.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidField(err, "categoryId", "No category exists with this ID", "not_found")
		}
		return nil, err
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	s.forget(ctx, product)
	s.remember(ctx, product)
	return product, nil
}

func (s *catalogService) PriceBands(ctx context.Context) ([]models.PriceBand, error) {
	bands, err := s.products.ProductPriceBands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "price bands")
	}
	return bands, nil
}

// RecentProductIDs lists the products most recently looked up or created,
// newest first. Without a cache the list is empty.
func (s *catalogService) RecentProductIDs(ctx context.Context, limit int64) ([]string, error) {
	if s.cache == nil || limit <= 0 {
		return []string{}, nil
	}
	ids, err := s.cache.RecentProductIDs(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "recent products")
	}
	return ids, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.GetCategoryBySlug(ctx, slug)
}

func (s *catalogService) ListSubcategories(ctx context.Context, id string) ([]models.Category, error) {
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	children := make([]models.Category, 0)
	for _, c := range all {
		if c.ParentID != nil && *c.ParentID == id {
			children = append(children, c)
		}
	}
	return children, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	category := req.ToCategory()
	if category.Slug == "" {
		return nil, invalidField(nil, "slug", "Slug cannot be derived from the name", "required")
	}

	if category.ParentID != nil {
		parent, err := s.categories.GetCategory(ctx, *category.ParentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, invalidField(err, "parentId", "No category exists with this ID", "not_found")
			}
			return nil, err
		}
		if !parent.IsTopLevel() {
			return nil, invalidField(nil, "parentId", "Categories can only nest one level deep", "too_deep")
		}
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "create category")
	}
	return category, nil
}
