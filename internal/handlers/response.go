package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
)

// respondError maps service errors onto the wire envelope. Anything that
// is not an apierr value surfaces as a plain 500.
func respondError(c *gin.Context, err error) {
	c.JSON(apierr.StatusOf(err), gin.H{
		"error": gin.H{
			"code":    apierr.CodeOf(err),
			"message": err.Error(),
		},
	})
}
