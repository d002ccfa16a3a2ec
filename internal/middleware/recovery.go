package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/pkg/logger"
)

// Recovery 恢复panic并记录日志
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf("panic recovered: %v, path: %s", err, c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code": 500,
					"msg":  "服务器内部错误",
				})
			}
		}()
		c.Next()
	}
}
