package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductFilter is the predicate set applied to the catalog. A nil field means
// the predicate is absent, which is not the same as false or zero. Every
// present predicate must hold for a product to match.
type ProductFilter struct {
	CategoryID *string
	Search     *string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Brand      *string
	InStock    *bool
	IsOnSale   *bool
	IsFeatured *bool
	IsNew      *bool
}

// IsEmpty reports whether no predicate is set
func (f ProductFilter) IsEmpty() bool {
	return f.CategoryID == nil && f.Search == nil && f.MinPrice == nil && f.MaxPrice == nil &&
		f.Brand == nil && f.InStock == nil && f.IsOnSale == nil && f.IsFeatured == nil && f.IsNew == nil
}

// Matches applies every present predicate to p
func (f ProductFilter) Matches(p *Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Search != nil && !matchesSearch(p, *f.Search) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Brand != nil && p.Brand != *f.Brand {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.IsOnSale != nil && p.IsOnSale != *f.IsOnSale {
		return false
	}
	if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.IsNew != nil && p.IsNew != *f.IsNew {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring test over name, description
// and brand. Empty fields never match.
func matchesSearch(p *Product, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{p.Name, p.Description, p.Brand} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterProducts returns the products matching f, keeping their order
func FilterProducts(products []Product, f ProductFilter) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}
