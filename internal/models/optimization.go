package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeType 优化计费口径
type ChargeType string

const (
	ChargeTypeData ChargeType = "data" // 按数据用量优化
	ChargeTypeSMS  ChargeType = "sms"  // 按短信用量优化
)

// OptimizationStatus 优化任务状态(实例/通信组/工作单元共用)
type OptimizationStatus string

const (
	StatusPending             OptimizationStatus = "pending"               // 等待调度
	StatusRunning             OptimizationStatus = "running"               // 计算中
	StatusCompleteWithSuccess OptimizationStatus = "complete_with_success" // 已完成(有结果)
	StatusCompleteWithErrors  OptimizationStatus = "complete_with_errors"  // 已完成(无结果或出错)
	StatusAborted             OptimizationStatus = "aborted"               // 因配置无效被终止
)

// TerminalStatuses 终态集合
// 所有入口在执行副作用之前先检查终态,用于吸收至少一次投递带来的重复消息
var TerminalStatuses = map[OptimizationStatus]bool{
	StatusCompleteWithSuccess: true,
	StatusCompleteWithErrors:  true,
	StatusAborted:             true,
}

// IsTerminal 是否为终态
func (s OptimizationStatus) IsTerminal() bool {
	return TerminalStatuses[s]
}

// OptimizationInstance 表示一次完整的优化实例
// swagger:model
type OptimizationInstance struct {
	ID          uint               `json:"id" gorm:"primarykey,autoIncrement"`    // 实例ID
	CreatedAt   time.Time          `json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time          `json:"updated_at"`                            // 更新时间
	SessionID   string             `json:"session_id" gorm:"size:50;uniqueIndex"` // 会话ID(uuid)
	ChargeType  ChargeType         `json:"charge_type" gorm:"size:20;not null"`   // 计费口径
	Status      OptimizationStatus `json:"status" gorm:"size:30;not null;index"`  // 实例状态
	CompletedAt *time.Time         `json:"completed_at,omitempty"`                // 完成时间
}

// CommGroup 表示共享同一候选资费目录的设备集合(通信组)
// swagger:model
type CommGroup struct {
	ID             uint               `json:"id" gorm:"primarykey,autoIncrement"`   // 通信组ID
	CreatedAt      time.Time          `json:"created_at"`                           // 创建时间
	UpdatedAt      time.Time          `json:"updated_at"`                           // 更新时间
	InstanceID     uint               `json:"instance_id" gorm:"index;not null"`    // 所属优化实例ID
	SessionID      string             `json:"session_id" gorm:"size:50;index"`      // 会话ID
	CommPlanType   string             `json:"comm_plan_type" gorm:"size:50;index"`  // 通信计划类型(分组依据)
	Status         OptimizationStatus `json:"status" gorm:"size:30;not null;index"` // 通信组状态
	WinnerQueueID  *uint              `json:"winner_queue_id,omitempty"`            // 胜出工作单元ID
	DeviceCount    int                `json:"device_count"`                         // 设备数量
	BaselineCost   decimal.Decimal    `json:"baseline_cost" gorm:"type:decimal(14,4)"` // 优化前基准总成本
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`               // 完成时间
	AbortReason    string             `json:"abort_reason,omitempty" gorm:"size:500"` // 终止原因
}
