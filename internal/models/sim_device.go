package models

import (
	"time"

	"gorm.io/gorm"
)

// DeviceSyncStatus 定义设备同步状态
type DeviceSyncStatus string

const (
	DeviceSyncActive      DeviceSyncStatus = "active"      // 正常在网
	DeviceSyncSuspended   DeviceSyncStatus = "suspended"   // 已停机
	DeviceSyncDeactivated DeviceSyncStatus = "deactivated" // 已销户
)

// SimDevice 表示一张可计费的SIM卡连接
// 由外部同步子系统写入，优化引擎只读
// swagger:model
type SimDevice struct {
	ID            uint             `json:"id" gorm:"primarykey,autoIncrement"`        // 设备ID
	CreatedAt     time.Time        `json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time        `json:"updated_at"`                                // 更新时间
	DeletedAt     *time.Time       `json:"deleted_at,omitempty" gorm:"index"`         // 删除时间
	ICCID         string           `json:"iccid" gorm:"size:30;unique;index"`         // SIM卡ICCID
	MSISDN        string           `json:"msisdn" gorm:"size:20;index"`               // 手机号码
	SyncStatus    DeviceSyncStatus `json:"sync_status" gorm:"size:20;not null"`       // 同步状态
	UsageBytes    int64            `json:"usage_bytes"`                               // 本计费周期数据用量(字节)
	UsageMinutes  int64            `json:"usage_minutes"`                             // 本计费周期语音用量(分钟)
	UsageMessages int64            `json:"usage_messages"`                            // 本计费周期短信条数
	RatePlanID    uint             `json:"rate_plan_id" gorm:"index;not null"`        // 当前资费计划ID
	CommPlanID    uint             `json:"comm_plan_id" gorm:"index"`                 // 通信计划目录ID
	CommPlanType  string           `json:"comm_plan_type" gorm:"size:50;index"`       // 通信计划类型
	CommGroupID   *uint            `json:"comm_group_id,omitempty" gorm:"index"`      // 所属通信组ID
	Carrier       string           `json:"carrier" gorm:"size:50"`                    // 运营商
	ActivatedAt   time.Time        `json:"activated_at"`                              // 激活时间
}

// BeforeCreate 创建前的钩子函数
func (d *SimDevice) BeforeCreate(tx *gorm.DB) error {
	// 如果没有指定同步状态，默认为正常在网
	if d.SyncStatus == "" {
		d.SyncStatus = DeviceSyncActive
	}
	return nil
}
