package handlers

import (
	"strconv"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertService *service.AlertService
}

func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// GetAlerts godoc
// @Summary 获取告警列表
// @Description 获取优化过程中产生的告警信息列表（支持分页和筛选）
// @Tags 告警管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "当前页" default(1)
// @Param size query int false "每页大小" default(10)
// @Param status query string false "告警状态(active/resolved)"
// @Param event query string false "告警事件类型"
// @Param session_id query string false "会话ID"
// @Success 200 {object} utils.Response{data=utils.PageResult}
// @Router /alerts [get]
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if event := c.Query("event"); event != "" {
		filters["event_type"] = event
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		filters["session_id"] = sessionID
	}

	alerts, total, err := h.alertService.ListAlerts(current, size, filters)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取告警列表失败")
		return
	}

	utils.SuccessWithPage(c, alerts, current, size, total)
}

// GetAlert godoc
// @Summary 获取告警详情
// @Description 根据ID获取单个告警的详细信息
// @Tags 告警管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "告警ID"
// @Success 200 {object} utils.Response{data=models.OptimizationAlert}
// @Failure 404 {object} utils.Response
// @Router /alerts/{id} [get]
func (h *AlertHandler) GetAlert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的告警ID")
		return
	}

	alert, err := h.alertService.GetAlert(uint(id))
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "告警不存在")
		return
	}

	utils.Success(c, alert)
}

// ResolveAlert godoc
// @Summary 解决告警
// @Description 将告警标记为已解决状态
// @Tags 告警管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "告警ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /alerts/{id}/resolve [post]
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的告警ID")
		return
	}

	if err := h.alertService.ResolveAlert(uint(id)); err != nil {
		utils.Error(c, utils.ERROR, err.Error())
		return
	}

	utils.SuccessWithMessage(c, nil, "告警已解决")
}

// GetAlertStats godoc
// @Summary 获取告警统计
// @Description 获取告警的统计信息（总数、活跃数、已解决数）
// @Tags 告警管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=service.AlertStats}
// @Router /alerts/stats [get]
func (h *AlertHandler) GetAlertStats(c *gin.Context) {
	stats, err := h.alertService.GetAlertStats()
	if err != nil {
		utils.Error(c, utils.ERROR, "获取告警统计失败")
		return
	}

	utils.Success(c, stats)
}
