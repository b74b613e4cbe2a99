package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the storefront catalog
type Product struct {
	ID              string            `json:"id" bson:"_id"`
	Slug            string            `json:"slug" bson:"slug"`
	Name            string            `json:"name" bson:"name"`
	Description     string            `json:"description,omitempty" bson:"description,omitempty"`
	LongDescription string            `json:"longDescription,omitempty" bson:"long_description,omitempty"`
	CategoryID      string            `json:"categoryId" bson:"category_id"`
	Brand           string            `json:"brand,omitempty" bson:"brand,omitempty"`
	Model           string            `json:"model,omitempty" bson:"model,omitempty"`
	Price           decimal.Decimal   `json:"price" bson:"price"`
	OriginalPrice   *decimal.Decimal  `json:"originalPrice" bson:"original_price,omitempty"` // set only when discounted
	Image           string            `json:"image" bson:"image"`
	Images          []string          `json:"images" bson:"images"`
	InStock         bool              `json:"inStock" bson:"in_stock"`
	StockQuantity   int               `json:"stockQuantity" bson:"stock_quantity"`
	Rating          *decimal.Decimal  `json:"rating" bson:"rating,omitempty"`
	ReviewCount     int               `json:"reviewCount" bson:"review_count"`
	Specifications  map[string]string `json:"specifications" bson:"specifications"`
	Features        []string          `json:"features" bson:"features"`
	IsFeatured      bool              `json:"isFeatured" bson:"is_featured"`
	IsNew           bool              `json:"isNew" bson:"is_new"`
	IsOnSale        bool              `json:"isOnSale" bson:"is_on_sale"`
	CreatedAt       time.Time         `json:"createdAt" bson:"created_at"`
}

// PrimaryImage returns the first gallery image, falling back to Image
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Image
}

// HasValidDiscount reports whether OriginalPrice is set and above Price
func (p *Product) HasValidDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// IsDeal reports whether the product belongs on the deals listing
func (p *Product) IsDeal() bool {
	return p.IsOnSale && p.HasValidDiscount()
}

// DiscountPercent returns the rounded percentage off the original price, or 0
func (p *Product) DiscountPercent() int {
	if !p.IsDeal() {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

type CreateProductRequest struct {
	Name            string            `json:"name" binding:"required,min=2,max=200"`
	Slug            string            `json:"slug" binding:"omitempty,max=200"`
	Description     string            `json:"description" binding:"max=2000"`
	LongDescription string            `json:"longDescription" binding:"max=5000"`
	CategoryID      string            `json:"categoryId" binding:"required"`
	Brand           string            `json:"brand" binding:"max=100"`
	Model           string            `json:"model" binding:"max=100"`
	Price           decimal.Decimal   `json:"price"`
	OriginalPrice   *decimal.Decimal  `json:"originalPrice"`
	Image           string            `json:"image" binding:"required,url"`
	Images          []string          `json:"images" binding:"dive,url"`
	InStock         *bool             `json:"inStock"`
	StockQuantity   int               `json:"stockQuantity" binding:"gte=0"`
	Rating          *decimal.Decimal  `json:"rating"`
	ReviewCount     int               `json:"reviewCount" binding:"gte=0"`
	Specifications  map[string]string `json:"specifications"`
	Features        []string          `json:"features"`
	IsFeatured      bool              `json:"isFeatured"`
	IsNew           bool              `json:"isNew"`
	IsOnSale        bool              `json:"isOnSale"`
}

func (req *CreateProductRequest) ToProduct() *Product {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	images := req.Images
	if len(images) == 0 {
		images = []string{req.Image}
	}

	product := &Product{
		ID:              NewID(),
		Slug:            slug,
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		CategoryID:      req.CategoryID,
		Brand:           req.Brand,
		Model:           req.Model,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Image:           req.Image,
		Images:          images,
		InStock:         inStock,
		StockQuantity:   req.StockQuantity,
		Rating:          req.Rating,
		ReviewCount:     req.ReviewCount,
		Specifications:  req.Specifications,
		Features:        req.Features,
		IsFeatured:      req.IsFeatured,
		IsNew:           req.IsNew,
		IsOnSale:        req.IsOnSale,
		CreatedAt:       time.Now().UTC(),
	}
	if product.Specifications == nil {
		product.Specifications = make(map[string]string)
	}
	if product.Features == nil {
		product.Features = []string{}
	}
	return product
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
