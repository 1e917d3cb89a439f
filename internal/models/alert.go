package models

import (
	"time"
)

// AlertStatus 告警状态枚举
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "pending"  // 活跃状态
	AlertStatusResolved AlertStatus = "resolved" // 已解决
)

// AlertEvent 事件类型枚举
type AlertEvent string

const (
	AlertEventGroupAborted   AlertEvent = "group_aborted"   // 通信组因配置无效被终止
	AlertEventUnitFailed     AlertEvent = "unit_failed"     // 工作单元超过重试上限,永久失败
	AlertEventCheckpointLost AlertEvent = "checkpoint_lost" // 检查点丢失或损坏,单元从头重算
	AlertEventCoordTimeout   AlertEvent = "coord_timeout"   // 协调器等待超时,按已完成结果收尾
)

// OptimizationAlert 优化告警数据模型
type OptimizationAlert struct {
	ID          uint        `json:"id" gorm:"primaryKey;autoIncrement" example:"1"`
	EventType   AlertEvent  `json:"event_type" gorm:"not null;size:50" validate:"required" example:"group_aborted"`
	Status      AlertStatus `json:"status" gorm:"not null;size:20;default:'pending'" validate:"required" example:"pending"`
	SessionID   string      `json:"session_id" gorm:"size:50;index"`
	CommGroupID *uint       `json:"comm_group_id,omitempty" gorm:"index"`
	QueueID     *uint       `json:"queue_id,omitempty" gorm:"index"`
	Description string      `json:"description" gorm:"type:text" validate:"max=1000" example:"资费计划缺少有效的超额参数，通信组已终止"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
}
