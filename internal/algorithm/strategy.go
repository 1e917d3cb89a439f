package algorithm

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// StrategyExecutor 分配策略执行器
// 每种策略都是确定性的单遍贪心: 排序后逐个(或逐组)提交到边际成本最低的池
type StrategyExecutor struct {
	model *CostModel
}

// NewStrategyExecutor 创建策略执行器
func NewStrategyExecutor(model *CostModel) *StrategyExecutor {
	return &StrategyExecutor{model: model}
}

// Run 执行一种策略,产出一个完整的分配方案
// 池按计划ID升序遍历,边际成本相同取先遇到的池,即计划ID较小者,保证可复现
func (e *StrategyExecutor) Run(strategy define.Strategy, devices []*define.Device, plans []*define.Plan) *Solution {
	pools := e.newPools(plans)

	solution := &Solution{
		Strategy:   strategy,
		Pools:      pools,
		Unassigned: make([]*define.Device, 0),
		penalty:    e.model.Penalty(),
	}

	if strategy.Grouped() {
		e.assignGrouped(strategy, devices, solution)
	} else {
		e.assignIndividual(strategy, devices, solution)
	}

	return solution
}

// newPools 为每个候选计划创建空池,按计划ID升序
func (e *StrategyExecutor) newPools(plans []*define.Plan) []*RatePool {
	sorted := make([]*define.Plan, len(plans))
	copy(sorted, plans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	pools := make([]*RatePool, 0, len(sorted))
	for _, p := range sorted {
		pools = append(pools, NewRatePool(p, e.model))
	}
	return pools
}

// assignIndividual 逐设备贪心分配
func (e *StrategyExecutor) assignIndividual(strategy define.Strategy, devices []*define.Device, solution *Solution) {
	ordered := orderDevices(devices, strategy.LargestFirst())

	for _, d := range ordered {
		best := -1
		bestCost := decimal.Zero
		for i, pool := range solution.Pools {
			cost, ok := pool.MarginalCost(d)
			if !ok {
				continue
			}
			if best == -1 || cost.LessThan(bestCost) {
				best = i
				bestCost = cost
			}
		}
		if best == -1 {
			solution.Unassigned = append(solution.Unassigned, d)
			continue
		}
		// 提交后立即更新池聚合,下一个设备基于最新状态评估
		_ = solution.Pools[best].AddDevice(d)
	}
}

// assignGrouped 按通信计划预分组后整组分配
func (e *StrategyExecutor) assignGrouped(strategy define.Strategy, devices []*define.Device, solution *Solution) {
	groups := groupByCommPlan(devices)
	orderGroups(groups, strategy.LargestFirst())

	for _, g := range groups {
		best := -1
		bestCost := decimal.Zero
		for i, pool := range solution.Pools {
			cost, ok := pool.MarginalGroupCost(g.devices)
			if !ok {
				continue
			}
			if best == -1 || cost.LessThan(bestCost) {
				best = i
				bestCost = cost
			}
		}
		if best == -1 {
			solution.Unassigned = append(solution.Unassigned, g.devices...)
			continue
		}
		for _, d := range g.devices {
			_ = solution.Pools[best].AddDevice(d)
		}
	}
}

// deviceGroup 共享同一通信计划的设备组
type deviceGroup struct {
	commPlanID uint
	usage      decimal.Decimal // 组内用量合计
	devices    []*define.Device
}

// groupByCommPlan 按通信计划目录ID聚合设备
func groupByCommPlan(devices []*define.Device) []*deviceGroup {
	byPlan := make(map[uint]*deviceGroup)
	order := make([]uint, 0)
	for _, d := range devices {
		g, ok := byPlan[d.CommPlanID]
		if !ok {
			g = &deviceGroup{commPlanID: d.CommPlanID, usage: decimal.Zero}
			byPlan[d.CommPlanID] = g
			order = append(order, d.CommPlanID)
		}
		g.devices = append(g.devices, d)
		g.usage = g.usage.Add(d.UsageMB)
	}

	groups := make([]*deviceGroup, 0, len(byPlan))
	for _, id := range order {
		g := byPlan[id]
		// 组内设备按ID升序,保证整组提交顺序稳定
		sort.Slice(g.devices, func(i, j int) bool { return g.devices[i].ID < g.devices[j].ID })
		groups = append(groups, g)
	}
	return groups
}

// orderDevices 按用量排序设备,用量相同按设备ID升序
func orderDevices(devices []*define.Device, largestFirst bool) []*define.Device {
	ordered := make([]*define.Device, len(devices))
	copy(ordered, devices)
	sort.Slice(ordered, func(i, j int) bool {
		cmp := ordered[i].UsageMB.Cmp(ordered[j].UsageMB)
		if cmp == 0 {
			return ordered[i].ID < ordered[j].ID
		}
		if largestFirst {
			return cmp > 0
		}
		return cmp < 0
	})
	return ordered
}

// orderGroups 按组用量合计排序,用量相同按通信计划ID升序
func orderGroups(groups []*deviceGroup, largestFirst bool) {
	sort.Slice(groups, func(i, j int) bool {
		cmp := groups[i].usage.Cmp(groups[j].usage)
		if cmp == 0 {
			return groups[i].commPlanID < groups[j].commPlanID
		}
		if largestFirst {
			return cmp > 0
		}
		return cmp < 0
	})
}
