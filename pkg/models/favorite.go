package models

import "time"

// Favorite marks a product as saved by a user; (UserID, ProductID) is unique
type Favorite struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	ProductID string    `json:"productId" bson:"product_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// FavoriteEntry is a favorite joined with its product
type FavoriteEntry struct {
	Favorite
	Product Product `json:"product"`
}

type AddFavoriteRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" binding:"required"`
}
