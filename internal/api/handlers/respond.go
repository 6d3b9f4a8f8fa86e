package handlers

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/pkg/errors"
)

// respondError maps the engine's error taxonomy onto HTTP statuses:
// local validation 422, missing resources 404, remote failures 502 with the
// server's message passed through verbatim.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation *errors.ErrValidation
		notFound   *errors.ErrNotFound
		unauth     *errors.ErrUnauthorized
		remote     *errors.RemoteError
	)

	switch {
	case goerrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Message})
	case goerrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case goerrors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauth.Message})
	case goerrors.As(err, &remote):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": remote.Detail,
			"kind":  string(remote.Kind),
		})
	default:
		logger.Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
