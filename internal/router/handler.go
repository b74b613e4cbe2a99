package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/ai"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/service"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

// Pinger reports backend reachability for the health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services behind the HTTP API
type Handler struct {
	Catalog   service.CatalogService
	Cart      service.CartService
	Favorites service.FavoriteService
	Orders    service.OrderService
	Contact   service.ContactService
	Reporter  *ai.Reporter
	Backend   Pinger
}

// NewHandler wires every service over one store
func NewHandler(st store.Store, cache service.ProductCache, reporter *ai.Reporter) *Handler {
	return &Handler{
		Catalog:   service.NewCatalogService(st, st, cache),
		Cart:      service.NewCartService(st, st),
		Favorites: service.NewFavoriteService(st, st),
		Orders:    service.NewOrderService(st, st, st),
		Contact:   service.NewContactService(st),
		Reporter:  reporter,
		Backend:   st,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.Backend.Ping(c.Request.Context()); err != nil {
		log.WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// bindJSON decodes the body into req, answering 400 itself on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondValidation(c, service.FromValidationErrors(verrs))
			return false
		}
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return false
	}
	return true
}

func respondValidation(c *gin.Context, verr *service.ValidationError) {
	fields := make([]global.ValidationError, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = global.ValidationError{Field: f.Field, Message: f.Message, Code: f.Code}
	}
	c.JSON(http.StatusBadRequest, global.ErrorResponse(verr.Message, fields))
}

// respondError maps service and store errors onto status codes. notFound is
// the message used for a 404.
func respondError(c *gin.Context, err error, notFound string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse(notFound, nil))
	case errors.Is(err, service.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, global.ErrorResponse("Order status transition not allowed", []global.ValidationError{
			{Field: "status", Message: err.Error(), Code: "invalid_transition"},
		}))
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, global.ErrorResponse("Resource already exists", []global.ValidationError{
			{Field: "slug", Message: "slug is already in use", Code: "duplicate"},
		}))
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Internal server error", nil))
	}
}
