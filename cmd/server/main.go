package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hemalathapampana/Carrier-Optimization-sub000/docs" // 导入生成的swagger文档
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/api"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/cache"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/config"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/queue"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/repository"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/database"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"
)

// @title           SIM资费优化系统 API
// @version         1.0
// @description     SIM卡资费计划优化系统后端API文档
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description 请在此输入 'Bearer {token}' 格式的 JWT token

func main() {
	// 加载配置文件
	cfg := config.InitConfig()

	// 初始化 JWT 密钥
	utils.InitJWTSecret(cfg.JWT.Secret)

	// 初始化数据库连接
	database.InitDB("./" + cfg.Database.Name)
	db := database.GetDB()

	// 仓储层
	deviceRepo := repository.NewSimDeviceRepository(db)
	planRepo := repository.NewRatePlanRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	groupRepo := repository.NewCommGroupRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// 告警服务(引擎的告警出口)
	alertService := service.NewAlertService(alertRepo)

	// 检查点存储
	checkpointTTL := config.Duration(cfg.Optimizer.CheckpointTTL, 24*time.Hour)
	checkpointCache := cache.New(checkpointTTL)
	defer checkpointCache.Stop()
	checkpoints := cache.NewCheckpointStore(checkpointCache)

	// 消息调度器
	broker := queue.New(queue.Config{
		Workers:     cfg.Queue.Workers,
		BufferSize:  cfg.Queue.BufferSize,
		RequeueBase: config.Duration(cfg.Queue.RequeueBase, 2*time.Second),
		RequeueMax:  config.Duration(cfg.Queue.RequeueMax, 60*time.Second),
		MaxRetry:    cfg.Queue.MaxRetry,
	})

	// 成本模型参数
	costCfg := algorithm.DefaultCostConfig()
	costCfg.CurrencyPrecision = cfg.Optimizer.CurrencyPrecision
	if penalty, err := decimal.NewFromString(cfg.Optimizer.UnassignedPenalty); err == nil {
		costCfg.UnassignedPenalty = penalty
	} else {
		log.Printf("[警告] 未分配罚金配置 %q 非法，使用默认值", cfg.Optimizer.UnassignedPenalty)
	}

	// 运行控制器
	controller := algorithm.NewController(
		deviceRepo, planRepo, queueRepo, groupRepo,
		checkpoints, broker, alertService,
		algorithm.RunConfig{
			ExecBudget:    config.Duration(cfg.Optimizer.ExecBudget, 90*time.Second),
			BudgetMargin:  config.Duration(cfg.Optimizer.BudgetMargin, 5*time.Second),
			CheckpointTTL: checkpointTTL,
			Cost:          costCfg,
		},
	)

	// 完成协调器
	coordinator := algorithm.NewCoordinator(
		queueRepo, groupRepo, alertService, &algorithm.LogReportNotifier{},
		algorithm.CoordinatorConfig{
			PollInitial: config.Duration(cfg.Optimizer.PollInitial, 500*time.Millisecond),
			PollMax:     config.Duration(cfg.Optimizer.PollMax, 8*time.Second),
			MaxPolls:    cfg.Optimizer.MaxPolls,
		},
	)

	// 调度器挂接处理函数后启动
	broker.OnWork(controller.HandleWork)
	broker.OnCompletion(coordinator.HandleCompletion)
	broker.OnExhausted(controller.HandleExhausted)
	broker.Start()
	defer broker.Stop()

	// 优化编排服务
	optimizationService := service.NewOptimizationService(
		deviceRepo, planRepo, queueRepo, groupRepo,
		alertService, broker,
		cfg.Optimizer.BillingPeriodDays,
	)

	// 系统监控服务
	monitorService := service.NewMonitorService(broker)

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)

	// 创建Gin路由器
	router := gin.Default()

	// 设置路由
	api.SetupRoutes(router, &api.Services{
		Optimization: optimizationService,
		Alert:        alertService,
		Monitor:      monitorService,
	})

	// 添加Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 展示Swagger文档
	log.Println("Swagger文档地址: http://localhost:" + cfg.Port + "/swagger/index.html")

	// 启动服务器
	log.Printf("启动服务器，监听端口 :%s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("无法启动服务器: %s\n", err)
	}
}
