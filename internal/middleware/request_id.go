package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a correlation id, honoring one the
// client already sent, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("requestId", id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()

		log.Printf("[HTTP] [INFO] %s %s %d request=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), id)
	}
}
