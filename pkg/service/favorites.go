package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

type FavoriteService interface {
	ListFavorites(ctx context.Context, userID string) ([]models.FavoriteEntry, error)
	AddFavorite(ctx context.Context, userID, productID string) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, productID string) (bool, error)
	IsFavorite(ctx context.Context, userID, productID string) (bool, error)
}

func NewFavoriteService(favorites store.FavoriteRepository, products store.ProductRepository) FavoriteService {
	return &favoriteService{favorites: favorites, products: products}
}

type favoriteService struct {
	favorites store.FavoriteRepository
	products  store.ProductRepository
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	favorites, err := s.favorites.ListFavorites(ctx, userOrGuest(userID))
	if err != nil {
		return nil, errors.Wrap(err, "list favorites")
	}

	entries := make([]models.FavoriteEntry, 0, len(favorites))
	for _, fav := range favorites {
		product, err := s.products.GetProduct(ctx, fav.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "load product %s", fav.ProductID)
		}
		entries = append(entries, models.FavoriteEntry{Favorite: fav, Product: *product})
	}
	return entries, nil
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID, productID string) (*models.Favorite, error) {
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	favorite, err := s.favorites.AddFavorite(ctx, &models.Favorite{
		ID:        models.NewID(),
		UserID:    userOrGuest(userID),
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "add favorite")
	}
	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, productID string) (bool, error) {
	removed, err := s.favorites.RemoveFavorite(ctx, userOrGuest(userID), productID)
	if err != nil {
		return false, errors.Wrap(err, "remove favorite")
	}
	return removed, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	ok, err := s.favorites.HasFavorite(ctx, userOrGuest(userID), productID)
	if err != nil {
		return false, errors.Wrap(err, "check favorite")
	}
	return ok, nil
}
