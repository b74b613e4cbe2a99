package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) TrackOrder(c *gin.Context) {
	order, err := h.Orders.TrackOrder(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, err, "No order found for this tracking number")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status, req.TrackingNumber)
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
