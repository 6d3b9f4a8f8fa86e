package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/middleware"
)

// CheckoutResponse reports the outcome of a submission to the screen.
type CheckoutResponse struct {
	State            string   `json:"state"`
	OrderID          string   `json:"order_id,omitempty"`
	Subtotal         int64    `json:"subtotal"`
	ShippingFee      int64    `json:"shipping_fee"`
	Total            int64    `json:"total"`
	UndrainedItemIDs []string `json:"undrained_item_ids,omitempty"`
}

// HandleQuote returns the total the user would be charged for the current
// selection without submitting anything.
func HandleQuote(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		subtotal, total := s.Checkout.Quote()
		c.JSON(http.StatusOK, gin.H{
			"subtotal":     subtotal,
			"shipping_fee": total - subtotal,
			"total":        total,
		})
	}
}

// HandleCheckout runs the checkout transaction for the items selected at
// submission time.
func HandleCheckout(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, err := s.Checkout.Submit(c.Request.Context(), s.UserID)
		if err != nil {
			logger.Error("Checkout failed",
				zap.String("user_id", s.UserID),
				zap.String("state", result.State.String()),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			State:            result.State.String(),
			OrderID:          result.Order.ID,
			Subtotal:         result.Subtotal,
			ShippingFee:      result.ShippingFee,
			Total:            result.Total,
			UndrainedItemIDs: result.UndrainedItemIDs,
		})
	}
}
