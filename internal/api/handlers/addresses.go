package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/middleware"
	"github.com/greenshop/storefront/internal/domain"
)

// AddressRequest is the writable address payload from the screens.
type AddressRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Detail    string `json:"detail" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) payload() domain.AddressPayload {
	return domain.AddressPayload{
		FullName:  r.FullName,
		Phone:     r.Phone,
		Detail:    r.Detail,
		IsDefault: r.IsDefault,
	}
}

// HandleListAddresses refreshes and returns the address collection.
func HandleListAddresses(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := s.Addresses.Load(c.Request.Context()); err != nil {
			logger.Error("Failed to load addresses", zap.Error(err))
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": s.Addresses.Addresses()})
	}
}

// HandleGetDefaultAddress returns the default address, 404 when none exists.
func HandleGetDefaultAddress(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		address, found := s.Addresses.Default()
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "no default address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// HandleCreateAddress creates an address.
func HandleCreateAddress(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		address, err := s.Addresses.Create(c.Request.Context(), req.payload())
		if err != nil {
			logger.Error("Failed to create address", zap.Error(err))
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, address)
	}
}

// HandleUpdateAddress rewrites an address.
func HandleUpdateAddress(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		address, err := s.Addresses.Update(c.Request.Context(), c.Param("id"), req.payload())
		if err != nil {
			logger.Error("Failed to update address",
				zap.String("address_id", c.Param("id")),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, address)
	}
}

// HandleSetDefaultAddress makes an address the default.
func HandleSetDefaultAddress(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := s.Addresses.SetDefault(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to set default address",
				zap.String("address_id", c.Param("id")),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": s.Addresses.Addresses()})
	}
}

// HandleDeleteAddress removes an address.
func HandleDeleteAddress(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := s.Addresses.Remove(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete address",
				zap.String("address_id", c.Param("id")),
				zap.Error(err),
			)
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
