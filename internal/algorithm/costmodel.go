package algorithm

import (
	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// CostConfig 成本模型参数
type CostConfig struct {
	CurrencyPrecision int32           // 货币精度(小数位数)
	UnassignedPenalty decimal.Decimal // 未分配设备的固定罚金(每设备每周期)
}

// DefaultCostConfig 默认成本参数
// 用量恰好等于包含额度时超额费为0(固定规则);罚金与货币精度可通过配置覆盖
func DefaultCostConfig() CostConfig {
	return CostConfig{
		CurrencyPrecision: 2,
		UnassignedPenalty: decimal.NewFromInt(100),
	}
}

// CostModel 计费周期成本模型
// 纯函数:相同输入永远得到相同成本,是策略比较和断点续算正确性的前提
type CostModel struct {
	window define.BillingWindow
	cfg    CostConfig
}

// NewCostModel 创建成本模型
func NewCostModel(window define.BillingWindow, cfg CostConfig) *CostModel {
	return &CostModel{window: window, cfg: cfg}
}

// Window 当前计费窗口
func (m *CostModel) Window() define.BillingWindow {
	return m.window
}

// Penalty 未分配设备罚金
func (m *CostModel) Penalty() decimal.Decimal {
	return m.cfg.UnassignedPenalty
}

// Cost 计算单个设备在指定计划下的计费周期总成本
// 成本 = 折算后的基础费用 + 超额费用
func (m *CostModel) Cost(d *define.Device, p *define.Plan) decimal.Decimal {
	return m.BaseCost(d, p).Add(m.OverageCost(d.UsageMB, p.IncludedMB, p))
}

// BaseCost 计算基础费用
// 支持按天折算的计划: 基础费 × (设备在计划上的剩余天数 ÷ 周期总天数)
// 用量输入本身已经只包含设备在该计划上产生的部分,这里只折算基础费
func (m *CostModel) BaseCost(d *define.Device, p *define.Plan) decimal.Decimal {
	if !p.Prorate {
		return m.round(p.BaseCost)
	}
	days := m.window.Days()
	if days <= 0 {
		return m.round(p.BaseCost)
	}
	remaining := m.window.RemainingDays(d.ActivatedAt)
	prorated := p.BaseCost.
		Mul(decimal.NewFromInt(remaining)).
		Div(decimal.NewFromInt(days))
	return m.round(prorated)
}

// OverageCost 计算超出包含额度部分的费用
// 超额量按计费单位向上取整;用量恰好等于额度时为0
func (m *CostModel) OverageCost(usageMB, allowanceMB decimal.Decimal, p *define.Plan) decimal.Decimal {
	over := usageMB.Sub(allowanceMB)
	if !over.IsPositive() {
		return decimal.Zero
	}
	steps := over.Div(p.OverageStepMB).Ceil()
	return m.round(steps.Mul(p.OverageRate))
}

// PooledCost 计算共享流量池的聚合成本
// 池内额度共享: 总额度 = 单设备额度 × 设备数,超额按池的总缺口计,而非逐设备计
func (m *CostModel) PooledCost(devices []*define.Device, p *define.Plan) decimal.Decimal {
	if len(devices) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	usage := decimal.Zero
	for _, d := range devices {
		total = total.Add(m.BaseCost(d, p))
		usage = usage.Add(d.UsageMB)
	}

	allowance := p.IncludedMB.Mul(decimal.NewFromInt(int64(len(devices))))
	return total.Add(m.OverageCost(usage, allowance, p))
}

// round 按货币精度四舍五入
func (m *CostModel) round(v decimal.Decimal) decimal.Decimal {
	return v.Round(m.cfg.CurrencyPrecision)
}
