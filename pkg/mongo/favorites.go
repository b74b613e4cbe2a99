package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func favoriteKey(userID, productID string) bson.D {
	return bson.D{
		{Key: "user_id", Value: userID},
		{Key: "product_id", Value: productID},
	}
}

func (s *Store) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	cursor, err := s.collection(favoritesCollection).Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, translate(err, "find favorites")
	}
	defer cursor.Close(ctx)

	favorites := []models.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, translate(err, "decode favorites")
	}
	return favorites, nil
}

// AddFavorite inserts the pair only if it is missing and returns the stored row
func (s *Store) AddFavorite(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error) {
	filter := favoriteKey(favorite.UserID, favorite.ProductID)
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: favorite.ID},
		{Key: "created_at", Value: favorite.CreatedAt},
	}}}

	_, err := s.collection(favoritesCollection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, translate(err, "add favorite")
	}

	var stored models.Favorite
	if err := s.collection(favoritesCollection).FindOne(ctx, filter).Decode(&stored); err != nil {
		return nil, translate(err, "load favorite")
	}
	return &stored, nil
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, productID string) (bool, error) {
	res, err := s.collection(favoritesCollection).DeleteOne(ctx, favoriteKey(userID, productID))
	if err != nil {
		return false, translate(err, "remove favorite")
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) HasFavorite(ctx context.Context, userID, productID string) (bool, error) {
	count, err := s.collection(favoritesCollection).CountDocuments(ctx, favoriteKey(userID, productID), options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err, "check favorite")
	}
	return count > 0, nil
}
