package router

import (
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/service"
)

var registerValidations sync.Once

// NewEngine builds the gin engine with middleware and every API route
func NewEngine(cfg *global.Config, h *Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidations.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := service.RegisterValidations(v); err != nil {
				log.WithError(err).Fatal("Failed to register request validations")
			}
		}
	})

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	InitializeRoutes(engine, h)
	return engine
}

func InitializeRoutes(engine *gin.Engine, h *Handler) {
	api := engine.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.POST("", h.CreateProduct)
			products.GET("/deals", h.GetDeals)
			products.GET("/slug/:slug", h.GetProductBySlug)
			products.GET("/:id", h.GetProductByID)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.GetCategories)
			categories.POST("", h.CreateCategory)
			categories.GET("/slug/:slug", h.GetCategoryBySlug)
			categories.GET("/:id", h.GetCategoryByID)
			categories.GET("/:id/subcategories", h.GetSubcategories)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.POST("", h.AddToCart)
			cart.DELETE("", h.ClearCart)
			cart.PATCH("/:id", h.UpdateCartItem)
			cart.DELETE("/:id", h.RemoveCartItem)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", h.GetFavorites)
			favorites.POST("", h.AddFavorite)
			favorites.DELETE("", RequireQueryParams("userId", "productId"), h.RemoveFavorite)
			favorites.GET("/check", RequireQueryParams("userId", "productId"), h.CheckFavorite)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", h.GetOrders)
			orders.POST("", h.CreateOrder)
			orders.GET("/track/:trackingNumber", h.TrackOrder)
			orders.GET("/:id", h.GetOrderByID)
			orders.PATCH("/:id/status", h.UpdateOrderStatus)
		}

		api.POST("/contact", h.SubmitContact)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/catalog", h.GetCatalogAnalytics)

			aiAnalytics := analytics.Group("/ai")
			{
				aiAnalytics.GET("/catalog-report", h.GenerateAICatalogReport)
			}
		}
	}
}
