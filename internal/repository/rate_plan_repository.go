package repository

import (
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"

	"gorm.io/gorm"
)

type RatePlanRepository struct {
	db *gorm.DB
}

func NewRatePlanRepository(db *gorm.DB) *RatePlanRepository {
	return &RatePlanRepository{db: db}
}

// Create 创建资费计划(管理端种子数据用)
func (r *RatePlanRepository) Create(plan *models.RatePlan) error {
	return r.db.Create(plan).Error
}

// GetByID 根据ID获取资费计划
func (r *RatePlanRepository) GetByID(id uint) (*models.RatePlan, error) {
	var plan models.RatePlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// PlansByIDs 批量获取资费计划(引擎输入)
func (r *RatePlanRepository) PlansByIDs(ids []uint) ([]models.RatePlan, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var plans []models.RatePlan
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&plans).Error
	return plans, err
}

// ListByType 获取指定通信计划类型可用的候选计划
// 类型为空的计划对所有设备开放,始终包含在候选中
func (r *RatePlanRepository) ListByType(planType string) ([]models.RatePlan, error) {
	var plans []models.RatePlan
	err := r.db.
		Where("plan_type = ? OR plan_type = ?", planType, "").
		Order("id ASC").
		Find(&plans).Error
	return plans, err
}

// List 获取资费计划列表,支持分页和过滤
func (r *RatePlanRepository) List(offset, limit int, filters map[string]interface{}) ([]models.RatePlan, int64, error) {
	var plans []models.RatePlan
	var total int64

	query := r.db.Model(&models.RatePlan{})

	// 应用过滤条件
	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = query.Offset(offset).Limit(limit).Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

// Count 统计资费计划数量
func (r *RatePlanRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.RatePlan{})

	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&count).Error
	return count, err
}
