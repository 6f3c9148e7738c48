package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
)

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, return a generic message so DB details never leak
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
