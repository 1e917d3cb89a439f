package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

type CommGroupRepository struct {
	db *gorm.DB
}

func NewCommGroupRepository(db *gorm.DB) *CommGroupRepository {
	return &CommGroupRepository{db: db}
}

// Create 创建通信组
func (r *CommGroupRepository) Create(group *models.CommGroup) error {
	return r.db.Create(group).Error
}

// GroupByID 根据ID获取通信组
func (r *CommGroupRepository) GroupByID(id uint) (*models.CommGroup, error) {
	var group models.CommGroup
	err := r.db.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GroupsByInstance 获取优化实例的全部通信组
func (r *CommGroupRepository) GroupsByInstance(instanceID uint) ([]models.CommGroup, error) {
	var groups []models.CommGroup
	err := r.db.Where("instance_id = ?", instanceID).Order("id ASC").Find(&groups).Error
	return groups, err
}

// AbortGroup 因配置无效终止通信组及其全部未完成单元
// 坏输入数据重试无法修复,终止后的组不再接受任何工作消息
func (r *CommGroupRepository) AbortGroup(commGroupID uint, reason string) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.CommGroup{}).
			Where("id = ? AND status NOT IN ?", commGroupID, terminalStatusList()).
			Updates(map[string]interface{}{
				"status":       models.StatusAborted,
				"abort_reason": reason,
				"completed_at": now,
			}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.OptimizationQueue{}).
			Where("comm_group_id = ? AND status NOT IN ?", commGroupID, terminalStatusList()).
			Updates(map[string]interface{}{
				"status":       models.StatusCompleteWithErrors,
				"total_cost":   nil,
				"completed_at": now,
			}).Error
	})
}

// FinalizeGroup 固化通信组的最终状态(胜者、状态、完成时间)
func (r *CommGroupRepository) FinalizeGroup(group *models.CommGroup) error {
	return r.db.Save(group).Error
}

// CreateInstance 创建优化实例
func (r *CommGroupRepository) CreateInstance(instance *models.OptimizationInstance) error {
	return r.db.Create(instance).Error
}

// InstanceByID 根据ID获取优化实例
func (r *CommGroupRepository) InstanceByID(id uint) (*models.OptimizationInstance, error) {
	var instance models.OptimizationInstance
	err := r.db.First(&instance, id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// InstanceBySession 根据会话ID获取优化实例
func (r *CommGroupRepository) InstanceBySession(sessionID string) (*models.OptimizationInstance, error) {
	var instance models.OptimizationInstance
	err := r.db.Where("session_id = ?", sessionID).First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// ListInstances 获取优化实例列表(按创建时间倒序)
func (r *CommGroupRepository) ListInstances(offset, limit int) ([]models.OptimizationInstance, int64, error) {
	var instances []models.OptimizationInstance
	var total int64

	if err := r.db.Model(&models.OptimizationInstance{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&instances).Error
	if err != nil {
		return nil, 0, err
	}
	return instances, total, nil
}

// FinalizeInstance 当实例的全部通信组进入终态时固化实例状态
// 幂等: 实例已终态或仍有未完成的组时是无操作
func (r *CommGroupRepository) FinalizeInstance(instanceID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var instance models.OptimizationInstance
		if err := tx.First(&instance, instanceID).Error; err != nil {
			return err
		}
		if instance.Status.IsTerminal() {
			return nil
		}

		var outstanding int64
		err := tx.Model(&models.CommGroup{}).
			Where("instance_id = ? AND status NOT IN ?", instanceID, terminalStatusList()).
			Count(&outstanding).Error
		if err != nil {
			return err
		}
		if outstanding > 0 {
			return nil
		}

		// 任何一个组成功即视为实例成功
		var succeeded int64
		err = tx.Model(&models.CommGroup{}).
			Where("instance_id = ? AND status = ?", instanceID, models.StatusCompleteWithSuccess).
			Count(&succeeded).Error
		if err != nil {
			return err
		}

		now := time.Now()
		instance.Status = models.StatusCompleteWithErrors
		if succeeded > 0 {
			instance.Status = models.StatusCompleteWithSuccess
		}
		instance.CompletedAt = &now
		return tx.Save(&instance).Error
	})
}
