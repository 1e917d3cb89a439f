package repository

import (
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"

	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create 创建告警
func (r *AlertRepository) Create(alert *models.OptimizationAlert) error {
	return r.db.Create(alert).Error
}

// GetByID 根据ID获取告警
func (r *AlertRepository) GetByID(id uint) (*models.OptimizationAlert, error) {
	var alert models.OptimizationAlert
	err := r.db.First(&alert, id).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// Resolve 把告警标记为已解决
func (r *AlertRepository) Resolve(id uint) error {
	now := time.Now()
	return r.db.Model(&models.OptimizationAlert{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.AlertStatusResolved,
			"resolved_at": now,
		}).Error
}

// List 获取告警列表
func (r *AlertRepository) List(current, size int, filters map[string]interface{}) ([]models.OptimizationAlert, int64, error) {
	var alerts []models.OptimizationAlert
	var total int64

	query := r.db.Model(&models.OptimizationAlert{})

	// 应用过滤条件
	for key, value := range filters {
		if value != nil && value != "" {
			switch key {
			case "description":
				query = query.Where("description LIKE ?", "%"+value.(string)+"%")
			default:
				query = query.Where(key+" = ?", value)
			}
		}
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (current - 1) * size
	if err := query.Offset(offset).Limit(size).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// GetByStatus 根据状态获取告警列表
func (r *AlertRepository) GetByStatus(status models.AlertStatus) ([]models.OptimizationAlert, error) {
	var alerts []models.OptimizationAlert
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

// GetActiveAlerts 获取所有活跃告警
func (r *AlertRepository) GetActiveAlerts() ([]models.OptimizationAlert, error) {
	return r.GetByStatus(models.AlertStatusActive)
}

// Count 统计告警数量
func (r *AlertRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.OptimizationAlert{})

	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&count).Error
	return count, err
}
