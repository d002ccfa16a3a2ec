package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID 为每个请求生成或透传请求ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-ID")
		if requestId == "" {
			requestId = uuid.New().String()
		}

		c.Set("requestId", requestId)
		c.Writer.Header().Set("X-Request-ID", requestId)
		c.Next()
	}
}
