package handlers

import (
	"strconv"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OptimizationHandler struct {
	optimizationService *service.OptimizationService
}

func NewOptimizationHandler(optimizationService *service.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{
		optimizationService: optimizationService,
	}
}

// StartOptimization godoc
// @Summary 发起优化
// @Description 对全部未分组的在网设备发起一轮资费计划优化
// @Tags 优化管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.StartRequest true "优化请求参数"
// @Success 200 {object} utils.Response{data=service.StartResult}
// @Failure 400 {object} utils.Response
// @Router /optimization/start [post]
func (h *OptimizationHandler) StartOptimization(c *gin.Context) {
	var request service.StartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, err.Error())
		return
	}

	result, err := h.optimizationService.StartOptimization(&request)
	if err != nil {
		utils.Error(c, utils.ERROR, err.Error())
		return
	}

	utils.SuccessWithMessage(c, result, "优化已发起，工作消息已投递")
}

// GetInstanceStatus godoc
// @Summary 查询优化实例状态
// @Description 根据会话ID查询优化实例及其下属通信组与工作单元
// @Tags 优化管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session_id path string true "会话ID"
// @Success 200 {object} utils.Response{data=service.InstanceStatus}
// @Failure 404 {object} utils.Response
// @Router /optimization/instances/{session_id} [get]
func (h *OptimizationHandler) GetInstanceStatus(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的会话ID")
		return
	}

	status, err := h.optimizationService.GetInstanceStatus(sessionID)
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "优化实例不存在")
		return
	}

	utils.Success(c, status)
}

// ListInstances godoc
// @Summary 获取优化实例列表
// @Description 按创建时间倒序获取历史优化实例，支持分页
// @Tags 优化管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "当前页" default(1)
// @Param size query int false "每页大小" default(10)
// @Success 200 {object} utils.Response{data=utils.PageResult{records=[]models.OptimizationInstance}}
// @Router /optimization/instances [get]
func (h *OptimizationHandler) ListInstances(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	instances, total, err := h.optimizationService.ListInstances(current, size)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取优化实例列表失败")
		return
	}

	utils.SuccessWithPage(c, instances, current, size, total)
}
