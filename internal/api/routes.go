package api

import (
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/api/handlers"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/api/middleware"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/repository"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/database"

	"github.com/gin-gonic/gin"
)

// Services 路由依赖的引擎侧构件，在main中完成装配后注入
type Services struct {
	Optimization *service.OptimizationService
	Alert        *service.AlertService
	Monitor      *service.MonitorService
}

// SetupRoutes 设置所有路由
func SetupRoutes(router *gin.Engine, svcs *Services) {
	// 获取数据库连接
	db := database.GetDB()

	// 初始化仓储层
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewSimDeviceRepository(db)
	planRepo := repository.NewRatePlanRepository(db)

	// 初始化服务层
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(deviceRepo, planRepo)

	// 初始化处理器
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	deviceHandler := handlers.NewDeviceHandler(catalogService)
	ratePlanHandler := handlers.NewRatePlanHandler(catalogService)
	overviewHandler := handlers.NewOverviewHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(svcs.Monitor)
	optimizationHandler := handlers.NewOptimizationHandler(svcs.Optimization)
	alertHandler := handlers.NewAlertHandler(svcs.Alert)

	// 公开路由组
	public := router.Group("/api/v1")
	{
		// 健康检查路由
		public.GET("/health", healthHandler.CheckHealth)

		// 认证相关路由（登录和刷新令牌无需认证）
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
		}
	}

	// 需要认证的路由组
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		// 系统概览与监控
		protected.GET("/overview", overviewHandler.GetOverview)
		protected.GET("/health/metrics", healthHandler.GetMetrics)

		// 认证相关路由
		auth := protected.Group("/auth")
		{
			auth.GET("/me", authHandler.GetCurrentUser)
		}

		// 用户管理路由
		users := protected.Group("/users")
		{
			users.GET("/:id", userHandler.GetUser)
		}

		// 管理员专用路由
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			// 管理员用户管理
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", userHandler.ListUsers)
				adminUsers.POST("", userHandler.CreateUser)
			}
		}

		// 设备管理路由
		devices := protected.Group("/devices")
		{
			devices.GET("", deviceHandler.ListDevices)
			devices.POST("", middleware.AdminMiddleware(), deviceHandler.CreateDevice)
			devices.GET("/:id", deviceHandler.GetDevice)
		}

		// 资费计划管理路由
		plans := protected.Group("/plans")
		{
			plans.GET("", ratePlanHandler.ListRatePlans)
			plans.POST("", middleware.AdminMiddleware(), ratePlanHandler.CreateRatePlan)
			plans.GET("/:id", ratePlanHandler.GetRatePlan)
		}

		// 优化管理路由
		optimization := protected.Group("/optimization")
		{
			optimization.POST("/start", optimizationHandler.StartOptimization)
			optimization.GET("/instances", optimizationHandler.ListInstances)
			optimization.GET("/instances/:session_id", optimizationHandler.GetInstanceStatus)
		}

		// 告警管理路由
		alerts := protected.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.GET("/stats", alertHandler.GetAlertStats)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.POST("/:id/resolve", alertHandler.ResolveAlert)
		}
	}
}
