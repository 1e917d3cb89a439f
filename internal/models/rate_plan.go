package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RatePlan 表示一个可选的资费计划
// 由外部同步子系统维护，优化引擎只读
// swagger:model
type RatePlan struct {
	ID             uint            `json:"id" gorm:"primarykey,autoIncrement"`           // 计划ID
	CreatedAt      time.Time       `json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time       `json:"updated_at"`                                   // 更新时间
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" gorm:"index"`            // 删除时间
	Name           string          `json:"name" gorm:"size:100;not null;index"`          // 计划名称
	Carrier        string          `json:"carrier" gorm:"size:50;index"`                 // 运营商
	PlanType       string          `json:"plan_type" gorm:"size:50;index"`               // 计划类型(与设备通信计划类型匹配,空表示不限)
	BaseCost       decimal.Decimal `json:"base_cost" gorm:"type:decimal(12,4)"`          // 月基础费用
	IncludedMB     decimal.Decimal `json:"included_mb" gorm:"type:decimal(12,4)"`        // 包含流量(MB)
	OverageRate    decimal.Decimal `json:"overage_rate" gorm:"type:decimal(12,6)"`       // 超额费率(每计费单位)
	OverageStepMB  decimal.Decimal `json:"overage_step_mb" gorm:"type:decimal(12,4)"`    // 超额计费单位(MB)
	Poolable       bool            `json:"poolable"`                                     // 是否支持流量池共享
	Prorate        bool            `json:"prorate"`                                      // 是否按天折算基础费用
}

// Validate 校验计划参数是否满足优化引擎的前置条件
// 超额费率和超额计费单位必须为正,否则该计划不可参与优化
func (p *RatePlan) Validate() error {
	if !p.OverageRate.IsPositive() {
		return errors.New("资费计划超额费率必须大于0")
	}
	if !p.OverageStepMB.IsPositive() {
		return errors.New("资费计划超额计费单位必须大于0")
	}
	return nil
}
