package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OptimizationQueue 表示一个可调度的工作单元
// 一个通信组搭配一个候选资费计划子集,是优化引擎的最小调度单位
// 状态和成本以关系库为唯一事实来源,只由控制器和协调器修改
// swagger:model
type OptimizationQueue struct {
	ID          uint               `json:"id" gorm:"primarykey,autoIncrement"`      // 工作单元ID
	CreatedAt   time.Time          `json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time          `json:"updated_at"`                              // 更新时间
	InstanceID  uint               `json:"instance_id" gorm:"index;not null"`       // 所属优化实例ID
	CommGroupID uint               `json:"comm_group_id" gorm:"index;not null"`     // 所属通信组ID
	SessionID   string             `json:"session_id" gorm:"size:50;index"`         // 会话ID
	PlanSet     string             `json:"plan_set" gorm:"type:text"`               // 候选资费计划ID列表(JSON格式)
	Status      OptimizationStatus `json:"status" gorm:"size:30;not null;index"`    // 单元状态
	TotalCost   *decimal.Decimal   `json:"total_cost,omitempty" gorm:"type:decimal(14,4)"` // 最优解总成本(完成后写入)
	Strategy    int                `json:"strategy"`                                // 胜出策略编号
	RunCount    int                `json:"run_count"`                               // 被调度执行的次数
	CompletedAt *time.Time         `json:"completed_at,omitempty"`                  // 完成时间
}

// PlanIDs 解析候选计划ID列表
func (q *OptimizationQueue) PlanIDs() ([]uint, error) {
	var ids []uint
	if err := json.Unmarshal([]byte(q.PlanSet), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetPlanIDs 序列化候选计划ID列表
func (q *OptimizationQueue) SetPlanIDs(ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	q.PlanSet = string(data)
	return nil
}
