package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceBandBounds are the lower edges of the catalog price bands. The last
// band is open ended.
var PriceBandBounds = []int64{0, 50, 200, 500, 1000}

// PriceBand summarizes the products priced inside one band
type PriceBand struct {
	Label        string          `json:"label" bson:"_id"`
	ProductCount int             `json:"productCount" bson:"count"`
	AveragePrice decimal.Decimal `json:"averagePrice" bson:"avg_price"`
	MinPrice     decimal.Decimal `json:"minPrice" bson:"min_price"`
	MaxPrice     decimal.Decimal `json:"maxPrice" bson:"max_price"`
}

// PriceBandLabel names band i, e.g. "50-200" or "1000+"
func PriceBandLabel(i int) string {
	if i == len(PriceBandBounds)-1 {
		return fmt.Sprintf("%d+", PriceBandBounds[i])
	}
	return fmt.Sprintf("%d-%d", PriceBandBounds[i], PriceBandBounds[i+1])
}

func priceBandIndex(price decimal.Decimal) int {
	idx := 0
	for i, bound := range PriceBandBounds {
		if price.GreaterThanOrEqual(decimal.NewFromInt(bound)) {
			idx = i
		}
	}
	return idx
}

// BucketPrices groups products into bands ordered by price. Bands without
// products are left out.
func BucketPrices(products []Product) []PriceBand {
	type acc struct {
		count    int
		sum      decimal.Decimal
		min, max decimal.Decimal
	}
	accs := make([]*acc, len(PriceBandBounds))

	for _, p := range products {
		i := priceBandIndex(p.Price)
		a := accs[i]
		if a == nil {
			a = &acc{min: p.Price, max: p.Price}
			accs[i] = a
		}
		a.count++
		a.sum = a.sum.Add(p.Price)
		a.min = decimal.Min(a.min, p.Price)
		a.max = decimal.Max(a.max, p.Price)
	}

	bands := make([]PriceBand, 0, len(accs))
	for i, a := range accs {
		if a == nil {
			continue
		}
		bands = append(bands, PriceBand{
			Label:        PriceBandLabel(i),
			ProductCount: a.count,
			AveragePrice: a.sum.Div(decimal.NewFromInt(int64(a.count))).Round(2),
			MinPrice:     a.min,
			MaxPrice:     a.max,
		})
	}
	return bands
}
