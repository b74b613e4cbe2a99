package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func priceBandPipeline() bson.A {
	boundaries := make(bson.A, 0, len(models.PriceBandBounds))
	branches := make(bson.A, 0, len(models.PriceBandBounds)-1)
	for i, bound := range models.PriceBandBounds {
		if i == len(models.PriceBandBounds)-1 {
			break
		}
		boundaries = append(boundaries, bound)
		branches = append(branches, bson.D{
			{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", bound}}}},
			{Key: "then", Value: models.PriceBandLabel(i)},
		})
	}
	last := len(models.PriceBandBounds) - 1
	// $bucket needs the upper edge of the last closed band
	boundaries = append(boundaries, models.PriceBandBounds[last])
	openLabel := models.PriceBandLabel(last)

	return bson.A{
		bson.D{
			{Key: "$bucket", Value: bson.D{
				{Key: "groupBy", Value: "$price"},
				{Key: "boundaries", Value: boundaries},
				{Key: "default", Value: openLabel},
				{Key: "output", Value: bson.D{
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "avg_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
					{Key: "min_price", Value: bson.D{{Key: "$min", Value: "$price"}}},
					{Key: "max_price", Value: bson.D{{Key: "$max", Value: "$price"}}},
				}},
			}},
		},
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "label", Value: bson.D{
					{Key: "$switch", Value: bson.D{
						{Key: "branches", Value: branches},
						{Key: "default", Value: openLabel},
					}},
				}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: "$label"},
				{Key: "count", Value: 1},
				{Key: "min_price", Value: 1},
				{Key: "max_price", Value: 1},
				{Key: "avg_price", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_price", 2}}}},
			}},
		},
	}
}

// ProductPriceBands buckets the catalog by price on the server
func (s *Store) ProductPriceBands(ctx context.Context) ([]models.PriceBand, error) {
	cursor, err := s.collection(productsCollection).Aggregate(ctx, priceBandPipeline())
	if err != nil {
		return nil, translate(err, "aggregate price bands")
	}
	defer cursor.Close(ctx)

	bands := []models.PriceBand{}
	if err := cursor.All(ctx, &bands); err != nil {
		return nil, translate(err, "decode price bands")
	}
	return bands, nil
}
