package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/middleware"
	"github.com/greenshop/storefront/internal/domain"
)

// CartItemView is one cart line as the screens render it.
type CartItemView struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Selected  bool   `json:"selected"`
	LineTotal int64  `json:"line_total"`
}

// CartResponse is the full cart read accessor payload.
type CartResponse struct {
	Items         []CartItemView `json:"items"`
	SelectedTotal int64          `json:"selected_total"`
	Total         int64          `json:"total"`
}

func toCartView(items []domain.CartItem) []CartItemView {
	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Selected:  item.Selected,
			LineTotal: item.LineTotal(),
		})
	}
	return views
}

// AddCartItemRequest asks for a product to be added to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// HandleGetCart returns the current cart snapshot with selection and totals.
func HandleGetCart(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}

// HandleLoadCart refreshes the cart from the remote service and returns the
// merged collection.
func HandleLoadCart(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := s.Cart.Load(c.Request.Context()); err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}

// HandleAddCartItem adds a product to the cart.
func HandleAddCartItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := s.Cart.Add(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
			logger.Error("Failed to add cart item", zap.Error(err))
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}

// HandleIncrementCartItem raises a line's quantity by one.
func HandleIncrementCartItem(logger *zap.Logger) gin.HandlerFunc {
	return cartQuantityHandler(logger, true)
}

// HandleDecrementCartItem lowers a line's quantity by one, never below one.
func HandleDecrementCartItem(logger *zap.Logger) gin.HandlerFunc {
	return cartQuantityHandler(logger, false)
}

func cartQuantityHandler(logger *zap.Logger, increment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID := c.Param("id")
		var err error
		if increment {
			err = s.Cart.Increment(c.Request.Context(), itemID)
		} else {
			err = s.Cart.Decrement(c.Request.Context(), itemID)
		}
		if err != nil {
			logger.Error("Failed to update quantity",
				zap.String("item_id", itemID),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}

// HandleToggleCartItem flips a line's checkout selection. Local only.
func HandleToggleCartItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID := c.Param("id")
		if err := s.Cart.ToggleSelected(itemID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}

// HandleRemoveCartItem deletes one line.
func HandleRemoveCartItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		itemID := c.Param("id")
		if err := s.Cart.Remove(c.Request.Context(), itemID); err != nil {
			logger.Error("Failed to remove cart item",
				zap.String("item_id", itemID),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CartResponse{
			Items:         toCartView(s.Cart.Items()),
			SelectedTotal: s.Cart.Total(true),
			Total:         s.Cart.Total(false),
		})
	}
}
