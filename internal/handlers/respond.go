package handler

import (
	"storefront-billing-backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps application errors onto the wire shape every endpoint
// shares: {"error": {"code": ..., "message": ...}}.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"error": gin.H{
			"code":    apperrors.Code(err),
			"message": apperrors.Message(err),
		},
	})
}
