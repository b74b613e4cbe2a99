package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

const maxUpdateAttempts = 3

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	cursor, err := s.collection(ordersCollection).Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, translate(err, "find orders")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err, "decode orders")
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.collection(ordersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order)
	if err != nil {
		return nil, translate(err, "order %s", id)
	}
	return &order, nil
}

func (s *Store) FindOrderByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Order, error) {
	var order models.Order
	err := s.collection(ordersCollection).FindOne(ctx, bson.D{{Key: "tracking_number", Value: trackingNumber}}).Decode(&order)
	if err != nil {
		return nil, translate(err, "tracking number %s", trackingNumber)
	}
	return &order, nil
}

// CreateOrder writes the order with its items embedded in one document
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := s.collection(ordersCollection).InsertOne(ctx, order)
	return translate(err, "insert order %s", order.ID)
}

// UpdateOrder replaces the order only if updated_at has not moved since it
// was read, retrying a few times when another writer got there first
func (s *Store) UpdateOrder(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}

		working := *current
		if err := mutate(&working); err != nil {
			return nil, err
		}

		res, err := s.collection(ordersCollection).ReplaceOne(ctx,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "updated_at", Value: current.UpdatedAt},
			},
			&working,
		)
		if err != nil {
			return nil, translate(err, "replace order %s", id)
		}
		if res.MatchedCount == 1 {
			return &working, nil
		}
	}
	return nil, errors.Wrapf(store.ErrConflict, "order %s changed during update", id)
}

func (s *Store) CreateContactMessage(ctx context.Context, message *models.ContactMessage) error {
	_, err := s.collection(contactMessagesCollection).InsertOne(ctx, message)
	return translate(err, "insert contact message")
}
