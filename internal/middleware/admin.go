package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// AdminDirectory 管理员校验所需的用户查询接口
type AdminDirectory interface {
	FindByID(id uint) (*model.User, error)
}

// AdminAuth 管理员认证中间件
// 必须在 JWT 中间件之后使用
func AdminAuth(users AdminDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从上下文中获取用户ID（JWT中间件已经验证过token并设置了userId）
		userId, exists := c.Get("userId")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "未登录",
			})
			c.Abort()
			return
		}

		// 查询用户
		user, err := users.FindByID(userId.(uint))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "用户不存在或已被删除",
			})
			c.Abort()
			return
		}

		// 验证是否是管理员
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"code": 403,
				"msg":  "无管理员权限",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
