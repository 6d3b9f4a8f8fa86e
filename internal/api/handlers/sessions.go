package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api/middleware"
	"github.com/greenshop/storefront/internal/session"
)

// CreateSessionRequest registers a user's session. The token comes from the
// external identity service; the engine never mints one.
type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

// HandleCreateSession builds the per-user stores and registers the session.
func HandleCreateSession(manager *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		s, err := manager.Create(req.UserID, req.Token)
		if err != nil {
			logger.Error("Failed to create session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": s.ID.String(),
			"user_id":    s.UserID,
		})
	}
}

// HandleDeleteSession discards the caller's session on logout.
func HandleDeleteSession(manager *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		manager.Delete(s.ID)
		c.Status(http.StatusNoContent)
	}
}
