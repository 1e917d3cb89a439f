package handlers

import (
	"strconv"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	catalogService *service.CatalogService
}

func NewDeviceHandler(catalogService *service.CatalogService) *DeviceHandler {
	return &DeviceHandler{
		catalogService: catalogService,
	}
}

// ListDevices godoc
// @Summary 获取SIM设备列表
// @Description 获取所有SIM设备列表，支持分页和筛选
// @Tags 设备管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "页码(默认1)"
// @Param size query int false "每页数量(默认10)"
// @Param sync_status query string false "在网状态筛选"
// @Param comm_plan_type query string false "通信计划类型筛选"
// @Param carrier query string false "运营商筛选"
// @Success 200 {object} utils.Response{data=utils.PageResult{records=[]models.SimDevice}}
// @Router /devices [get]
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	filters := make(map[string]interface{})
	if syncStatus := c.Query("sync_status"); syncStatus != "" {
		filters["sync_status"] = syncStatus
	}
	if planType := c.Query("comm_plan_type"); planType != "" {
		filters["comm_plan_type"] = planType
	}
	if carrier := c.Query("carrier"); carrier != "" {
		filters["carrier"] = carrier
	}

	devices, total, err := h.catalogService.ListDevices(current, size, filters)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取设备列表失败")
		return
	}

	utils.SuccessWithPage(c, devices, current, size, total)
}

// GetDevice godoc
// @Summary 获取SIM设备详情
// @Description 根据ID获取SIM设备详细信息
// @Tags 设备管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "设备ID"
// @Success 200 {object} utils.Response{data=models.SimDevice}
// @Failure 404 {object} utils.Response
// @Router /devices/{id} [get]
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的设备ID")
		return
	}

	device, err := h.catalogService.GetDevice(uint(id))
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "设备不存在")
		return
	}

	utils.Success(c, device)
}

// CreateDevice godoc
// @Summary 创建SIM设备
// @Description 录入新的SIM设备，ICCID不允许重复
// @Tags 设备管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param device body models.SimDevice true "设备信息"
// @Success 200 {object} utils.Response{data=models.SimDevice}
// @Failure 400 {object} utils.Response
// @Router /devices [post]
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var device models.SimDevice
	if err := c.ShouldBindJSON(&device); err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的设备数据")
		return
	}

	if err := h.catalogService.CreateDevice(&device); err != nil {
		utils.Error(c, utils.ERROR, err.Error())
		return
	}

	utils.SuccessWithMessage(c, device, "设备创建成功")
}
