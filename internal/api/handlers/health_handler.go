package handlers

import (
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler 处理健康检查相关的请求
type HealthHandler struct {
	monitorService *service.MonitorService
}

// NewHealthHandler 创建一个新的健康检查处理器
func NewHealthHandler(monitorService *service.MonitorService) *HealthHandler {
	return &HealthHandler{
		monitorService: monitorService,
	}
}

// CheckHealth godoc
// @Summary      健康检查接口
// @Description  返回API服务的运行状态、版本和时间戳信息
// @Tags         系统监控
// @Accept       json
// @Produce      json
// @Success      200  {object}  utils.Response
// @Router       /health [get]
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	status := map[string]interface{}{
		"status":    "up",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "carrier-optimization API",
		"version":   "1.0.0",
	}

	utils.Success(c, status)
}

// GetMetrics godoc
// @Summary      系统监控指标
// @Description  返回CPU、内存、Goroutine数量及调度器积压量
// @Tags         系统监控
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  utils.Response{data=models.SystemMetrics}
// @Router       /health/metrics [get]
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.monitorService.GetSystemMetrics()
	if err != nil {
		utils.Error(c, utils.ERROR, "获取系统指标失败")
		return
	}

	utils.Success(c, metrics)
}
