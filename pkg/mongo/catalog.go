package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// insertionOrder sorts by the creation stamp; _id breaks ties
var insertionOrder = bson.D{
	{Key: "created_at", Value: 1},
	{Key: "_id", Value: 1},
}

func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query, err := productQuery(filter)
	if err != nil {
		return nil, err
	}

	cursor, err := s.collection(productsCollection).Find(ctx, query, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, translate(err, "find products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate(err, "decode products")
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.collection(productsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if err != nil {
		return nil, translate(err, "product %s", id)
	}
	return &product, nil
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.collection(productsCollection).FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&product)
	if err != nil {
		return nil, translate(err, "product slug %s", slug)
	}
	return &product, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	_, err := s.collection(productsCollection).InsertOne(ctx, product)
	return translate(err, "insert product %s", product.Slug)
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.collection(categoriesCollection).Find(ctx, bson.D{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, translate(err, "find categories")
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, translate(err, "decode categories")
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.collection(categoriesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&category)
	if err != nil {
		return nil, translate(err, "category %s", id)
	}
	return &category, nil
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.collection(categoriesCollection).FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&category)
	if err != nil {
		return nil, translate(err, "category slug %s", slug)
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.collection(categoriesCollection).InsertOne(ctx, category)
	return translate(err, "insert category %s", category.Slug)
}
