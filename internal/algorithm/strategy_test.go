package algorithm

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// TestSingleAssignmentInvariant 每个设备必须恰好出现在一个池或未分配列表中
func TestSingleAssignmentInvariant(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	devices := []*define.Device{
		testDevice(1, "100"),
		testDevice(2, "600"),
		testDevice(3, "1200"),
		testDevice(4, "50"),
	}
	plans := []*define.Plan{testPlan(1), testPlan(2)}

	for _, strategy := range define.AllStrategies() {
		solution := executor.Run(strategy, devices, plans)

		if got := solution.DeviceCount(); got != len(devices) {
			t.Errorf("策略 %s: 期望覆盖 %d 个设备, 实际 %d", strategy, len(devices), got)
		}

		seen := make(map[uint]int)
		for _, pool := range solution.Pools {
			for _, d := range pool.Devices() {
				seen[d.ID]++
			}
		}
		for _, d := range solution.Unassigned {
			seen[d.ID]++
		}
		for _, d := range devices {
			if seen[d.ID] != 1 {
				t.Errorf("策略 %s: 设备 %d 出现 %d 次, 期望恰好1次", strategy, d.ID, seen[d.ID])
			}
		}
	}
}

// TestTieBreakLowerPlanID 边际成本相同时必须选计划ID较小的池
func TestTieBreakLowerPlanID(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	// 两个参数完全相同的计划,乱序传入
	devices := []*define.Device{testDevice(1, "100")}
	plans := []*define.Plan{testPlan(7), testPlan(3)}

	solution := executor.Run(define.StrategyLargestFirst, devices, plans)
	snap := solution.Snapshot()

	if got := snap.Assignments[1]; got != 3 {
		t.Errorf("期望设备分配到计划3, 实际计划 %d", got)
	}
}

// TestIneligibleDeviceUnassigned 类型不匹配的设备进入未分配列表并按罚金计价
func TestIneligibleDeviceUnassigned(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	plan := testPlan(1)
	plan.PlanType = "IoT"

	d := testDevice(1, "100")
	d.CommPlanType = "M2M"

	solution := executor.Run(define.StrategySmallestFirst, []*define.Device{d}, []*define.Plan{plan})

	if len(solution.Unassigned) != 1 {
		t.Fatalf("期望1个未分配设备, 实际 %d", len(solution.Unassigned))
	}
	// 总成本 = 未分配罚金
	want := DefaultCostConfig().UnassignedPenalty
	if got := solution.TotalCost(); !got.Equal(want) {
		t.Errorf("期望总成本等于罚金 %s, 实际 %s", want, got)
	}
}

// TestGroupedStrategyKeepsGroupTogether 分组策略下同一通信计划的设备整组分配
func TestGroupedStrategyKeepsGroupTogether(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	d1 := testDevice(1, "600")
	d2 := testDevice(2, "50")
	d1.CommPlanID = 10
	d2.CommPlanID = 10
	d3 := testDevice(3, "300")
	d3.CommPlanID = 20

	plans := []*define.Plan{testPlan(1), testPlan(2)}
	solution := executor.Run(define.StrategyGroupedLargestFirst, []*define.Device{d1, d2, d3}, plans)
	snap := solution.Snapshot()

	if snap.Assignments[1] != snap.Assignments[2] {
		t.Errorf("同组设备被拆分: 设备1在计划 %d, 设备2在计划 %d", snap.Assignments[1], snap.Assignments[2])
	}
}

// TestStrategyReproducible 相同输入多次执行必须产出完全相同的方案
func TestStrategyReproducible(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	devices := []*define.Device{
		testDevice(3, "800"),
		testDevice(1, "800"),
		testDevice(2, "120"),
	}
	plans := []*define.Plan{testPlan(2), testPlan(1)}

	for _, strategy := range define.AllStrategies() {
		first := executor.Run(strategy, devices, plans).Snapshot()
		for i := 0; i < 5; i++ {
			again := executor.Run(strategy, devices, plans).Snapshot()
			if !again.TotalCost.Equal(first.TotalCost) {
				t.Fatalf("策略 %s: 第%d次总成本 %s 与首次 %s 不一致", strategy, i, again.TotalCost, first.TotalCost)
			}
			for id, planID := range first.Assignments {
				if again.Assignments[id] != planID {
					t.Fatalf("策略 %s: 设备 %d 的分配不稳定", strategy, id)
				}
			}
		}
	}
}

// TestPooledPlanPrefersSharing 池化计划下高用量设备与低用量设备共享额度
func TestPooledPlanPrefersSharing(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	pooled := testPlan(1)
	pooled.Poolable = true
	flat := testPlan(2)
	flat.BaseCost = decimal.RequireFromString("25.00")

	devices := []*define.Device{
		testDevice(1, "900"),
		testDevice(2, "50"),
	}

	solution := executor.Run(define.StrategyLargestFirst, devices, []*define.Plan{pooled, flat})
	snap := solution.Snapshot()

	// 两台设备共享池: 总用量950 < 总额度1000, 只付两份基础费
	want := decimal.RequireFromString("40.00")
	if !snap.TotalCost.Equal(want) {
		t.Errorf("期望共享池总成本 %s, 实际 %s", want, snap.TotalCost)
	}
}

// TestBestOfFourIsMinimum 留存的最优方案成本不得高于四种策略中的任何一种
func TestBestOfFourIsMinimum(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	executor := NewStrategyExecutor(model)

	// 混合人群: 池化计划、低额度廉价计划与标准计划并存,
	// 分组策略与逐个策略会给出成本不同的方案
	pooled := testPlan(1)
	pooled.Poolable = true
	standard := testPlan(2)
	budget := testPlan(3)
	budget.BaseCost = decimal.RequireFromString("8.00")
	budget.IncludedMB = decimal.RequireFromString("100")
	plans := []*define.Plan{pooled, standard, budget}

	d1 := testDevice(1, "900")
	d2 := testDevice(2, "40")
	d3 := testDevice(3, "450")
	d4 := testDevice(4, "60")
	d5 := testDevice(5, "700")
	d1.CommPlanID = 10
	d2.CommPlanID = 10
	d3.CommPlanID = 20
	d4.CommPlanID = 20
	d5.CommPlanID = 30
	devices := []*define.Device{d1, d2, d3, d4, d5}

	costs := make(map[define.Strategy]decimal.Decimal)
	var best *define.SolutionSnapshot
	for _, strategy := range define.AllStrategies() {
		snap := executor.Run(strategy, devices, plans).Snapshot()
		costs[strategy] = snap.TotalCost
		if best == nil || snap.TotalCost.LessThan(best.TotalCost) {
			best = snap
		}
	}

	if best == nil {
		t.Fatal("没有产出任何方案")
	}
	for strategy, cost := range costs {
		if best.TotalCost.GreaterThan(cost) {
			t.Errorf("留存方案成本 %s 高于策略 %s 的 %s", best.TotalCost, strategy, cost)
		}
	}
	// 留存的最优解必须覆盖全部设备
	if got := len(best.Assignments) + len(best.Unassigned); got != len(devices) {
		t.Errorf("期望最优方案覆盖 %d 个设备, 实际 %d", len(devices), got)
	}
}

// TestRatePoolMarginalCostDoesNotMutate 边际成本评估不得修改池状态
func TestRatePoolMarginalCostDoesNotMutate(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	pool := NewRatePool(testPlan(1), model)

	if err := pool.AddDevice(testDevice(1, "400")); err != nil {
		t.Fatalf("加入设备失败: %v", err)
	}
	before := pool.TotalCost()

	if _, ok := pool.MarginalCost(testDevice(2, "700")); !ok {
		t.Fatal("期望设备可进入池")
	}
	if got := pool.TotalCost(); !got.Equal(before) {
		t.Errorf("边际评估改变了池成本: %s -> %s", before, got)
	}
	if pool.Size() != 1 {
		t.Errorf("边际评估改变了池大小: %d", pool.Size())
	}
}

// TestRatePoolRejectsDuplicate 同一设备不允许重复加入同一池
func TestRatePoolRejectsDuplicate(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	pool := NewRatePool(testPlan(1), model)

	d := testDevice(1, "100")
	if err := pool.AddDevice(d); err != nil {
		t.Fatalf("首次加入失败: %v", err)
	}
	if err := pool.AddDevice(d); err == nil {
		t.Error("期望重复加入返回错误")
	}
}
