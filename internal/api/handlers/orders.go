package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/middleware"
	"github.com/greenshop/storefront/internal/domain"
)

// HandleLoadOrders replaces the local history with the server's, newest first.
func HandleLoadOrders(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := s.Orders.Load(c.Request.Context()); err != nil {
			logger.Error("Failed to load orders", zap.Error(err))
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": s.Orders.Orders()})
	}
}

// HandleListOrders returns the history, optionally filtered to one status
// tab via ?status=. Filtering is a projection; the collection is unchanged.
func HandleListOrders(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		raw := strings.ToUpper(c.Query("status"))
		if raw == "" || raw == "ALL" {
			c.JSON(http.StatusOK, gin.H{"orders": s.Orders.FilterByStatus("")})
			return
		}

		status := domain.OrderStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown order status: " + raw})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": s.Orders.FilterByStatus(status)})
	}
}

// HandleGetOrder returns one order for the detail view.
func HandleGetOrder(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		order, err := s.Orders.Get(c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
