package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/globalreach/crm-api/internal/constants"
)

// RequestID assigns each request an id, honoring one supplied by the caller,
// and echoes it in the response headers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, id)
		c.Writer.Header().Set(constants.HeaderRequestID, id)
		c.Next()
	}
}
