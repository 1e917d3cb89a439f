package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

type QueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Create 创建工作单元
func (r *QueueRepository) Create(queue *models.OptimizationQueue) error {
	return r.db.Create(queue).Error
}

// GetByID 根据ID获取工作单元
func (r *QueueRepository) GetByID(id uint) (*models.OptimizationQueue, error) {
	var queue models.OptimizationQueue
	err := r.db.First(&queue, id).Error
	if err != nil {
		return nil, err
	}
	return &queue, nil
}

// QueuesByIDs 批量获取工作单元
func (r *QueueRepository) QueuesByIDs(ids []uint) ([]models.OptimizationQueue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var queues []models.OptimizationQueue
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&queues).Error
	return queues, err
}

// QueuesByGroup 获取通信组的全部工作单元
func (r *QueueRepository) QueuesByGroup(commGroupID uint) ([]models.OptimizationQueue, error) {
	var queues []models.OptimizationQueue
	err := r.db.Where("comm_group_id = ?", commGroupID).Order("id ASC").Find(&queues).Error
	return queues, err
}

// QueuesByInstance 获取优化实例的全部工作单元
func (r *QueueRepository) QueuesByInstance(instanceID uint) ([]models.OptimizationQueue, error) {
	var queues []models.OptimizationQueue
	err := r.db.Where("instance_id = ?", instanceID).Order("id ASC").Find(&queues).Error
	return queues, err
}

// MarkRunning 把一批单元标记为计算中
// 状态迁移经过状态机校验,已终态的单元原样跳过
func (r *QueueRepository) MarkRunning(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var queues []models.OptimizationQueue
		if err := tx.Where("id IN ?", ids).Find(&queues).Error; err != nil {
			return err
		}
		for i := range queues {
			sm := define.NewQueueStateMachine(&queues[i])
			if sm.IsTerminal() {
				continue
			}
			if err := sm.ToRunning(); err != nil {
				return err
			}
			if err := tx.Save(&queues[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteUnits 在单个事务里把一批结果写成终态
// 避免出现部分单元看起来已完成而其余未完成的窗口
func (r *QueueRepository) CompleteUnits(results []*define.UnitResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, res := range results {
			var queue models.OptimizationQueue
			if err := tx.First(&queue, res.QueueID).Error; err != nil {
				return err
			}

			sm := define.NewQueueStateMachine(&queue)
			if sm.IsTerminal() {
				// 重复投递下另一工作者已写过终态,保持幂等
				continue
			}
			if res.Improved && res.Best != nil {
				if err := sm.ToCompleteWithSuccess(res); err != nil {
					return err
				}
			} else {
				if err := sm.ToCompleteWithErrors(); err != nil {
					return err
				}
			}
			if err := tx.Save(&queue).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkFailed 把一批单元标记为永久失败(错误完成终态)
func (r *QueueRepository) MarkFailed(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return r.db.Model(&models.OptimizationQueue{}).
		Where("id IN ? AND status NOT IN ?", ids, terminalStatusList()).
		Updates(map[string]interface{}{
			"status":       models.StatusCompleteWithErrors,
			"total_cost":   nil,
			"completed_at": now,
		}).Error
}

// OutstandingCount 统计通信组内尚未进入终态的单元数
func (r *QueueRepository) OutstandingCount(commGroupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OptimizationQueue{}).
		Where("comm_group_id = ? AND status NOT IN ?", commGroupID, terminalStatusList()).
		Count(&count).Error
	return count, err
}

// DemoteLosers 把通信组内除胜者外的成功单元降级
// 成本作废、状态置为错误完成,使其不再参与任何后续聚合
// 状态翻转期间持行级悲观锁,防止两个并发收尾方竞争同一行
func (r *QueueRepository) DemoteLosers(commGroupID, winnerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var losers []models.OptimizationQueue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("comm_group_id = ? AND id <> ? AND status = ?",
				commGroupID, winnerID, models.StatusCompleteWithSuccess).
			Find(&losers).Error
		if err != nil {
			return err
		}

		for i := range losers {
			losers[i].Status = models.StatusCompleteWithErrors
			losers[i].TotalCost = nil
			if err := tx.Save(&losers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// terminalStatusList 终态列表(SQL的IN条件用)
func terminalStatusList() []models.OptimizationStatus {
	list := make([]models.OptimizationStatus, 0, len(models.TerminalStatuses))
	for s := range models.TerminalStatuses {
		list = append(list, s)
	}
	return list
}
