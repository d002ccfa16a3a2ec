package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/api"
	"github.com/AllenLi0110/simple-waterball/internal/middleware"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/metrics"
)

// Handlers 路由所需的全部处理器
type Handlers struct {
	Auth   *api.AuthAPI
	User   *api.UserAPI
	Course *api.CourseAPI
	Order  *api.OrderAPI
	Admins middleware.AdminDirectory
}

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h Handlers) {
	// 健康检查接口（不需要任何中间件）
	r.GET("/api/v1/health", api.SimpleHealthCheck)

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API路由
	apiGroup := r.Group("/api/v1")
	apiGroup.Use(middleware.Cors())

	// 认证相关
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	// 课程浏览（不需要认证）
	apiGroup.GET("/courses", h.Course.List)
	apiGroup.GET("/courses/:id", h.Course.Get)

	// 课程管理（需要管理员权限）
	adminGuard := []gin.HandlerFunc{middleware.JWT(), middleware.AdminAuth(h.Admins)}
	apiGroup.POST("/courses", append(adminGuard, h.Course.Create)...)
	apiGroup.PUT("/courses/:id", append(adminGuard, h.Course.Update)...)
	apiGroup.DELETE("/courses/:id", append(adminGuard, h.Course.Delete)...)

	// 需要认证的路由
	authorized := apiGroup.Group("/")
	authorized.Use(middleware.JWT())
	{
		// 用户相关
		user := authorized.Group("/user")
		{
			user.GET("/profile", h.User.GetProfile)
			user.PUT("/profile", h.User.UpdateProfile)
		}

		// 订单相关
		order := authorized.Group("/orders")
		{
			order.POST("", h.Order.Create)
			order.GET("/:id", h.Order.GetByID)
			order.GET("/number/:orderNumber", h.Order.GetByNumber)
			order.POST("/number/:orderNumber/payment", h.Order.CompletePayment)
			order.GET("/user/:userId", h.Order.ListByUser)
			order.GET("/course/:courseId", h.Order.ListByCourse)
			order.GET("/user/:userId/course/:courseId", h.Order.ListByUserAndCourse)
		}
	}
}
