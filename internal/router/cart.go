package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Cart.GetCart(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.Cart.AddToCart(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(item))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err, "Cart item not found")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(item))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	if err := h.Cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Cart item not found")
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse("Item removed from cart", nil))
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Cart.ClearCart(c.Request.Context(), c.Query("userId")); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse("Cart cleared", nil))
}
