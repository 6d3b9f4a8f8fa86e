package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/handlers"
	"github.com/greenshop/storefront/internal/api/middleware"
	"github.com/greenshop/storefront/internal/config"
	"github.com/greenshop/storefront/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, sessions *session.Manager, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", handlers.HandleCreateSession(sessions, logger))

		// Everything below requires a live session
		authed := v1.Group("")
		authed.Use(middleware.SessionMiddleware(sessions, logger))
		{
			authed.DELETE("/sessions", handlers.HandleDeleteSession(sessions, logger))

			authed.GET("/cart", handlers.HandleGetCart(logger))
			authed.POST("/cart/load", handlers.HandleLoadCart(logger))
			authed.POST("/cart/items", handlers.HandleAddCartItem(logger))
			authed.POST("/cart/items/:id/increment", handlers.HandleIncrementCartItem(logger))
			authed.POST("/cart/items/:id/decrement", handlers.HandleDecrementCartItem(logger))
			authed.POST("/cart/items/:id/toggle", handlers.HandleToggleCartItem(logger))
			authed.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(logger))

			authed.GET("/addresses", handlers.HandleListAddresses(logger))
			authed.GET("/addresses/default", handlers.HandleGetDefaultAddress(logger))
			authed.POST("/addresses", handlers.HandleCreateAddress(logger))
			authed.PUT("/addresses/:id", handlers.HandleUpdateAddress(logger))
			authed.POST("/addresses/:id/default", handlers.HandleSetDefaultAddress(logger))
			authed.DELETE("/addresses/:id", handlers.HandleDeleteAddress(logger))

			authed.POST("/orders/load", handlers.HandleLoadOrders(logger))
			authed.GET("/orders", handlers.HandleListOrders(logger))
			authed.GET("/orders/:id", handlers.HandleGetOrder(logger))

			authed.GET("/checkout/quote", handlers.HandleQuote(logger))
			authed.POST("/checkout", handlers.HandleCheckout(logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
