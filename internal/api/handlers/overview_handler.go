package handlers

import (
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/service"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OverviewHandler struct {
	catalogService *service.CatalogService
}

func NewOverviewHandler(catalogService *service.CatalogService) *OverviewHandler {
	return &OverviewHandler{
		catalogService: catalogService,
	}
}

// GetOverview godoc
// @Summary 获取系统概览信息
// @Description 获取系统中的设备数量、资费计划数量等静态指标信息
// @Tags 系统概览
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=service.OverviewStats}
// @Router /overview [get]
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	stats, err := h.catalogService.GetOverviewStats()
	if err != nil {
		utils.Error(c, utils.ERROR, "获取系统概览信息失败")
		return
	}

	utils.Success(c, stats)
}
