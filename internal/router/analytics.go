package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/ai"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

const recentProductLimit = 10

func (h *Handler) catalogStats(c *gin.Context) (ai.CatalogStats, error) {
	threshold := ai.DefaultLowStockThreshold
	if raw := c.Query("lowStock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return ai.CatalogStats{}, errInvalidThreshold
		}
		threshold = n
	}

	ctx := c.Request.Context()
	products, err := h.Catalog.QueryProducts(ctx, models.ProductFilter{})
	if err != nil {
		return ai.CatalogStats{}, errors.Wrap(err, "load products")
	}
	categories, err := h.Catalog.ListCategories(ctx)
	if err != nil {
		return ai.CatalogStats{}, errors.Wrap(err, "load categories")
	}
	bands, err := h.Catalog.PriceBands(ctx)
	if err != nil {
		return ai.CatalogStats{}, errors.Wrap(err, "load price bands")
	}

	stats := ai.ComputeCatalogStats(products, categories, threshold)
	stats.PriceBands = bands
	stats.RecentProductIDs = []string{}
	if recent, err := h.Catalog.RecentProductIDs(ctx, recentProductLimit); err != nil {
		log.WithError(err).Warn("Failed to read recent products from cache")
	} else {
		stats.RecentProductIDs = recent
	}
	return stats, nil
}

var errInvalidThreshold = errors.New("lowStock must be a non-negative integer")

func (h *Handler) respondStatsError(c *gin.Context, err error) {
	if errors.Is(err, errInvalidThreshold) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid query parameters", []global.ValidationError{
			{Field: "lowStock", Message: err.Error(), Code: "invalid_number"},
		}))
		return
	}
	respondError(c, err, "")
}

func (h *Handler) GetCatalogAnalytics(c *gin.Context) {
	stats, err := h.catalogStats(c)
	if err != nil {
		h.respondStatsError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}

func (h *Handler) GenerateAICatalogReport(c *gin.Context) {
	stats, err := h.catalogStats(c)
	if err != nil {
		h.respondStatsError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(h.Reporter.CatalogReport(c.Request.Context(), stats)))
}
