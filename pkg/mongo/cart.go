package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func (s *Store) ListCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := s.collection(cartItemsCollection).Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, translate(err, "find cart items")
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, translate(err, "decode cart items")
	}
	return items, nil
}

// AddCartItem upserts on the unique (user_id, product_id) index and
// increments the quantity of an existing line in the same operation
func (s *Store) AddCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	filter := bson.D{
		{Key: "user_id", Value: item.UserID},
		{Key: "product_id", Value: item.ProductID},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "quantity", Value: item.Quantity}}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: item.ID},
			{Key: "created_at", Value: item.CreatedAt},
		}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.CartItem
	err := s.collection(cartItemsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// two upserts raced to insert; the loser retries as an increment
		err = s.collection(cartItemsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	}
	if err != nil {
		return nil, translate(err, "add cart item")
	}
	return &stored, nil
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	var stored models.CartItem
	err := s.collection(cartItemsCollection).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "quantity", Value: quantity}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, translate(err, "cart item %s", id)
	}
	return &stored, nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	res, err := s.collection(cartItemsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return translate(err, "delete cart item %s", id)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "cart item %s", id)
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	_, err := s.collection(cartItemsCollection).DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	return translate(err, "clear cart for %s", userID)
}
