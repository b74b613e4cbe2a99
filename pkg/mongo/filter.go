package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// productQuery translates a ProductFilter into a query document. Only the
// present predicates appear in the result.
func productQuery(f models.ProductFilter) (bson.D, error) {
	query := bson.D{}

	if f.CategoryID != nil {
		query = append(query, bson.E{Key: "category_id", Value: *f.CategoryID})
	}
	if f.Search != nil {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(*f.Search), Options: "i"}
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
			bson.D{{Key: "brand", Value: pattern}},
		}})
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		bounds := bson.D{}
		if f.MinPrice != nil {
			lo, err := ToDecimal128(*f.MinPrice)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bson.E{Key: "$gte", Value: lo})
		}
		if f.MaxPrice != nil {
			hi, err := ToDecimal128(*f.MaxPrice)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bson.E{Key: "$lte", Value: hi})
		}
		query = append(query, bson.E{Key: "price", Value: bounds})
	}
	if f.Brand != nil {
		query = append(query, bson.E{Key: "brand", Value: *f.Brand})
	}

	flags := []struct {
		key   string
		value *bool
	}{
		{"in_stock", f.InStock},
		{"is_on_sale", f.IsOnSale},
		{"is_featured", f.IsFeatured},
		{"is_new", f.IsNew},
	}
	for _, flag := range flags {
		if flag.value != nil {
			query = append(query, bson.E{Key: flag.key, Value: *flag.value})
		}
	}

	return query, nil
}
