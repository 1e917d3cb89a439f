package handlers

import (
	"strconv"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RatePlanHandler struct {
	catalogService *service.CatalogService
}

func NewRatePlanHandler(catalogService *service.CatalogService) *RatePlanHandler {
	return &RatePlanHandler{
		catalogService: catalogService,
	}
}

// ListRatePlans godoc
// @Summary 获取资费计划列表
// @Description 获取所有资费计划，支持分页和类型筛选
// @Tags 资费管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "页码(默认1)"
// @Param size query int false "每页数量(默认10)"
// @Param plan_type query string false "计划类型筛选"
// @Success 200 {object} utils.Response{data=utils.PageResult{records=[]models.RatePlan}}
// @Router /plans [get]
func (h *RatePlanHandler) ListRatePlans(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	filters := make(map[string]interface{})
	if planType := c.Query("plan_type"); planType != "" {
		filters["plan_type"] = planType
	}

	plans, total, err := h.catalogService.ListRatePlans(current, size, filters)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取资费计划列表失败")
		return
	}

	utils.SuccessWithPage(c, plans, current, size, total)
}

// GetRatePlan godoc
// @Summary 获取资费计划详情
// @Description 根据ID获取资费计划详细信息
// @Tags 资费管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "计划ID"
// @Success 200 {object} utils.Response{data=models.RatePlan}
// @Failure 404 {object} utils.Response
// @Router /plans/{id} [get]
func (h *RatePlanHandler) GetRatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的计划ID")
		return
	}

	plan, err := h.catalogService.GetRatePlan(uint(id))
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "资费计划不存在")
		return
	}

	utils.Success(c, plan)
}

// CreateRatePlan godoc
// @Summary 创建资费计划
// @Description 创建新的资费计划，超额费率和超额阶梯必须为正数
// @Tags 资费管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param plan body models.RatePlan true "计划信息"
// @Success 200 {object} utils.Response{data=models.RatePlan}
// @Failure 400 {object} utils.Response
// @Router /plans [post]
func (h *RatePlanHandler) CreateRatePlan(c *gin.Context) {
	var plan models.RatePlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的计划数据")
		return
	}

	if err := h.catalogService.CreateRatePlan(&plan); err != nil {
		utils.Error(c, utils.ERROR, err.Error())
		return
	}

	utils.SuccessWithMessage(c, plan, "资费计划创建成功")
}
