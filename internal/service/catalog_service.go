package service

import (
	"errors"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/repository"
)

// CatalogService 设备清单与资费目录的读服务
// 清单同步本身由外部子系统完成,这里只暴露查询和管理端种子录入
type CatalogService struct {
	deviceRepo *repository.SimDeviceRepository
	planRepo   *repository.RatePlanRepository
}

// OverviewStats 系统概览统计数据
type OverviewStats struct {
	DeviceCount int64 `json:"device_count"` // 设备总数
	ActiveCount int64 `json:"active_count"` // 在网设备数
	PlanCount   int64 `json:"plan_count"`   // 资费计划总数
}

func NewCatalogService(deviceRepo *repository.SimDeviceRepository, planRepo *repository.RatePlanRepository) *CatalogService {
	return &CatalogService{
		deviceRepo: deviceRepo,
		planRepo:   planRepo,
	}
}

// GetDevice 获取设备详情
func (s *CatalogService) GetDevice(id uint) (*models.SimDevice, error) {
	return s.deviceRepo.GetByID(id)
}

// ListDevices 获取设备列表
func (s *CatalogService) ListDevices(current, size int, filters map[string]interface{}) ([]models.SimDevice, int64, error) {
	offset := (current - 1) * size
	return s.deviceRepo.List(offset, size, filters)
}

// GetRatePlan 获取资费计划详情
func (s *CatalogService) GetRatePlan(id uint) (*models.RatePlan, error) {
	return s.planRepo.GetByID(id)
}

// ListRatePlans 获取资费计划列表
func (s *CatalogService) ListRatePlans(current, size int, filters map[string]interface{}) ([]models.RatePlan, int64, error) {
	offset := (current - 1) * size
	return s.planRepo.List(offset, size, filters)
}

// CreateRatePlan 创建资费计划(管理端种子数据)
func (s *CatalogService) CreateRatePlan(plan *models.RatePlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	return s.planRepo.Create(plan)
}

// CreateDevice 创建设备(管理端种子数据)
func (s *CatalogService) CreateDevice(device *models.SimDevice) error {
	if device.ICCID == "" {
		return errors.New("设备ICCID不能为空")
	}
	existing, _ := s.deviceRepo.GetByICCID(device.ICCID)
	if existing != nil {
		return errors.New("设备ICCID已存在")
	}
	return s.deviceRepo.Create(device)
}

// GetOverviewStats 获取系统概览统计信息
func (s *CatalogService) GetOverviewStats() (*OverviewStats, error) {
	stats := &OverviewStats{}

	var err error
	stats.DeviceCount, err = s.deviceRepo.Count(nil)
	if err != nil {
		return nil, err
	}

	stats.ActiveCount, err = s.deviceRepo.Count(map[string]interface{}{
		"sync_status": models.DeviceSyncActive,
	})
	if err != nil {
		return nil, err
	}

	stats.PlanCount, err = s.planRepo.Count(nil)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
