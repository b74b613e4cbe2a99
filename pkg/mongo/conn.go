package mongo

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/store"
)

const (
	productsCollection        = "products"
	categoriesCollection      = "categories"
	cartItemsCollection       = "cart_items"
	favoritesCollection       = "favorites"
	ordersCollection          = "orders"
	contactMessagesCollection = "contact_messages"
)

// Store is the MongoDB implementation of store.Store
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect opens a client for uri, verifies it with a ping and returns a
// store bound to database
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetRegistry(NewRegistry())
	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	log.WithField("database", database).Info("Connected to MongoDB successfully")
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// translate maps driver errors onto the store sentinels
func translate(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrapf(store.ErrNotFound, format, args...)
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrapf(store.ErrConflict, format, args...)
	default:
		return errors.Wrapf(err, format, args...)
	}
}
