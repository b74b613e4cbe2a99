package ai

import (
	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// DefaultLowStockThreshold flags products at or below this many units
const DefaultLowStockThreshold = 50

type CategoryStats struct {
	CategoryID   string          `json:"categoryId"`
	Name         string          `json:"name"`
	ProductCount int             `json:"productCount"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

type LowStockItem struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stockQuantity"`
}

// CatalogStats is a point-in-time summary of the catalog
type CatalogStats struct {
	ProductCount    int             `json:"productCount"`
	InStockCount    int             `json:"inStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	OnSaleCount     int             `json:"onSaleCount"`
	AveragePrice    decimal.Decimal `json:"averagePrice"`
	TotalStockUnits int             `json:"totalStockUnits"`
	Categories      []CategoryStats `json:"categories"`
	LowStock        []LowStockItem  `json:"lowStock"`
	// PriceBands and RecentProductIDs are filled by the caller
	PriceBands       []models.PriceBand `json:"priceBands,omitempty"`
	RecentProductIDs []string           `json:"recentProductIds"`
}

// ComputeCatalogStats summarizes products. Categories keep the order given;
// categories with no products are reported with zero counts.
func ComputeCatalogStats(products []models.Product, categories []models.Category, lowStockThreshold int) CatalogStats {
	stats := CatalogStats{
		Categories: make([]CategoryStats, 0, len(categories)),
		LowStock:   []LowStockItem{},
	}

	type bucket struct {
		count int
		sum   decimal.Decimal
	}
	buckets := make(map[string]*bucket, len(categories))

	var total decimal.Decimal
	for _, p := range products {
		stats.ProductCount++
		if p.InStock {
			stats.InStockCount++
		} else {
			stats.OutOfStockCount++
		}
		if p.IsOnSale {
			stats.OnSaleCount++
		}
		stats.TotalStockUnits += p.StockQuantity
		total = total.Add(p.Price)

		b, ok := buckets[p.CategoryID]
		if !ok {
			b = &bucket{}
			buckets[p.CategoryID] = b
		}
		b.count++
		b.sum = b.sum.Add(p.Price)

		if p.StockQuantity <= lowStockThreshold {
			stats.LowStock = append(stats.LowStock, LowStockItem{
				ProductID:     p.ID,
				Name:          p.Name,
				StockQuantity: p.StockQuantity,
			})
		}
	}

	stats.AveragePrice = average(total, stats.ProductCount)
	for _, c := range categories {
		cs := CategoryStats{CategoryID: c.ID, Name: c.Name}
		if b, ok := buckets[c.ID]; ok {
			cs.ProductCount = b.count
			cs.AveragePrice = average(b.sum, b.count)
		}
		stats.Categories = append(stats.Categories, cs)
	}
	return stats
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}
