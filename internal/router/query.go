package router

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// parseProductFilter reads the catalog predicates from the query string.
// Missing or empty parameters leave the predicate unset.
func parseProductFilter(c *gin.Context) (models.ProductFilter, []global.ValidationError) {
	var (
		filter models.ProductFilter
		errs   []global.ValidationError
	)

	filter.CategoryID = stringParam(c, "categoryId")
	filter.Search = stringParam(c, "search")
	filter.Brand = stringParam(c, "brand")

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
	} {
		name := p.name
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, global.ValidationError{Field: name, Message: name + " must be a number", Code: "invalid_number"})
			continue
		}
		*p.dst = &d
	}

	for _, p := range []struct {
		name string
		dst  **bool
	}{
		{"inStock", &filter.InStock},
		{"isOnSale", &filter.IsOnSale},
		{"isFeatured", &filter.IsFeatured},
		{"isNew", &filter.IsNew},
	} {
		name := p.name
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, global.ValidationError{Field: name, Message: name + " must be true or false", Code: "invalid_boolean"})
			continue
		}
		*p.dst = &b
	}

	return filter, errs
}

func stringParam(c *gin.Context, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}
