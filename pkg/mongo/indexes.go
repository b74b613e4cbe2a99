package mongo

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Products
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_product_slug_unique"),
		},
	},
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetName("idx_product_category"),
		},
	},
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "is_on_sale", Value: 1},
				{Key: "price", Value: 1},
			},
			Options: options.Index().SetName("idx_product_sale_price"),
		},
	},
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    insertionOrder,
			Options: options.Index().SetName("idx_product_created"),
		},
	},

	// Categories
	{
		CollectionName: categoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_category_slug_unique"),
		},
	},
	{
		CollectionName: categoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "parent_id", Value: 1}},
			Options: options.Index().SetName("idx_category_parent"),
		},
	},
	{
		CollectionName: categoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    insertionOrder,
			Options: options.Index().SetName("idx_category_created"),
		},
	},

	// Cart items: one line per user and product
	{
		CollectionName: cartItemsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_cart_user_product_unique"),
		},
	},

	// Favorites: the pair is a set member
	{
		CollectionName: favoritesCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_favorite_user_product_unique"),
		},
	},

	// Orders
	{
		CollectionName: ordersCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_orders"),
		},
	},
	{
		CollectionName: ordersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "tracking_number", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_order_tracking"),
		},
	},
}

// EnsureIndexes creates every index the store relies on. Existing indexes
// with the same definition are left alone by the server.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	log.Info("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		indexName, err := s.collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			return errors.Wrapf(err, "create index on collection %s", idxConfig.CollectionName)
		}

		log.WithFields(log.Fields{
			"index":      indexName,
			"collection": idxConfig.CollectionName,
		}).Info("Created index")
	}

	log.Info("All indexes created successfully")
	return nil
}
