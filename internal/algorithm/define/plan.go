package define

import (
	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// Plan 优化引擎内的资费计划视图(从models.RatePlan构造,引擎只读)
type Plan struct {
	ID            uint            // 计划ID
	Name          string          // 计划名称
	PlanType      string          // 计划类型(空表示不限设备类型)
	BaseCost      decimal.Decimal // 月基础费用
	IncludedMB    decimal.Decimal // 包含用量
	OverageRate   decimal.Decimal // 超额费率
	OverageStepMB decimal.Decimal // 超额计费单位
	Poolable      bool            // 是否支持共享流量池
	Prorate       bool            // 是否按天折算基础费用
}

// NewPlan 从持久化模型构造引擎计划视图
func NewPlan(m models.RatePlan) *Plan {
	return &Plan{
		ID:            m.ID,
		Name:          m.Name,
		PlanType:      m.PlanType,
		BaseCost:      m.BaseCost,
		IncludedMB:    m.IncludedMB,
		OverageRate:   m.OverageRate,
		OverageStepMB: m.OverageStepMB,
		Poolable:      m.Poolable,
		Prorate:       m.Prorate,
	}
}

// Eligible 判断设备的通信计划类型是否允许进入该计划
// 类型不匹配的设备被排除在候选之外,而不是按错误的费率计价
func (p *Plan) Eligible(d *Device) bool {
	return p.PlanType == "" || p.PlanType == d.CommPlanType
}
