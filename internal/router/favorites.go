package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func (h *Handler) GetFavorites(c *gin.Context) {
	favorites, err := h.Favorites.ListFavorites(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(favorites))
}

func (h *Handler) AddFavorite(c *gin.Context) {
	var req models.AddFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	favorite, err := h.Favorites.AddFavorite(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(favorite))
}

// RemoveFavorite and CheckFavorite run behind RequireQueryParams("userId", "productId")
func (h *Handler) RemoveFavorite(c *gin.Context) {
	removed, err := h.Favorites.RemoveFavorite(c.Request.Context(), c.GetString("userId"), c.GetString("productId"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	message := "Favorite removed"
	if !removed {
		message = "Product was not a favorite"
	}
	c.JSON(http.StatusOK, global.MessageResponse(message, map[string]bool{"removed": removed}))
}

func (h *Handler) CheckFavorite(c *gin.Context) {
	isFavorite, err := h.Favorites.IsFavorite(c.Request.Context(), c.GetString("userId"), c.GetString("productId"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"isFavorite": isFavorite}))
}
