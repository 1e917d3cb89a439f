package algorithm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

func testWindow() define.BillingWindow {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return define.NewBillingWindow(start, 30)
}

func testPlan(id uint) *define.Plan {
	return &define.Plan{
		ID:            id,
		Name:          "标准流量计划",
		BaseCost:      decimal.RequireFromString("20.00"),
		IncludedMB:    decimal.RequireFromString("500"),
		OverageRate:   decimal.RequireFromString("10.50"),
		OverageStepMB: decimal.RequireFromString("250"),
	}
}

func testDevice(id uint, usageMB string) *define.Device {
	return &define.Device{
		ID:          id,
		UsageMB:     decimal.RequireFromString(usageMB),
		ActivatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// TestOverageCost 测试超额费用计算
func TestOverageCost(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	plan := testPlan(1)

	cases := []struct {
		name    string
		usageMB string
		want    string
	}{
		{"用量低于额度", "300", "0"},
		{"用量恰好等于额度", "500", "0"},
		{"超额一个计费单位", "750", "10.50"},
		{"超额不足一个单位按一个计", "501", "10.50"},
		{"超额跨过单位边界", "750.01", "21.00"},
	}

	for _, tc := range cases {
		d := testDevice(1, tc.usageMB)
		got := model.OverageCost(d.UsageMB, plan.IncludedMB, plan)
		want := decimal.RequireFromString(tc.want)
		if !got.Equal(want) {
			t.Errorf("%s: 期望超额费 %s, 实际 %s", tc.name, want, got)
		}
	}
}

// TestCostTotal 测试基础费与超额费的合计
func TestCostTotal(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	plan := testPlan(1)
	d := testDevice(1, "750")

	got := model.Cost(d, plan)
	want := decimal.RequireFromString("30.50")
	if !got.Equal(want) {
		t.Errorf("期望总成本 %s, 实际 %s", want, got)
	}
}

// TestProratedBaseCost 测试按天折算的基础费用
func TestProratedBaseCost(t *testing.T) {
	window := testWindow()
	model := NewCostModel(window, DefaultCostConfig())

	plan := testPlan(1)
	plan.Prorate = true

	// 周期中点激活,基础费折半
	d := testDevice(1, "0")
	d.ActivatedAt = window.Start.AddDate(0, 0, 15)

	got := model.BaseCost(d, plan)
	want := decimal.RequireFromString("10.00")
	if !got.Equal(want) {
		t.Errorf("期望折算基础费 %s, 实际 %s", want, got)
	}

	// 窗口开始前激活的设备按整个周期计
	d.ActivatedAt = window.Start.AddDate(0, 0, -10)
	got = model.BaseCost(d, plan)
	want = decimal.RequireFromString("20.00")
	if !got.Equal(want) {
		t.Errorf("期望完整基础费 %s, 实际 %s", want, got)
	}
}

// TestPooledCost 测试共享流量池的聚合成本
func TestPooledCost(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	plan := testPlan(1)
	plan.Poolable = true

	// 单设备超额,但池内总额度覆盖,不产生超额费
	devices := []*define.Device{
		testDevice(1, "700"),
		testDevice(2, "100"),
	}
	got := model.PooledCost(devices, plan)
	want := decimal.RequireFromString("40.00")
	if !got.Equal(want) {
		t.Errorf("期望池成本 %s, 实际 %s", want, got)
	}

	// 池总用量超出总额度,按池缺口计超额
	devices = append(devices, testDevice(3, "500"))
	got = model.PooledCost(devices, plan)
	// 总用量1300, 总额度1500 -> 无超额
	want = decimal.RequireFromString("60.00")
	if !got.Equal(want) {
		t.Errorf("期望池成本 %s, 实际 %s", want, got)
	}

	devices = append(devices, testDevice(4, "800"))
	got = model.PooledCost(devices, plan)
	// 总用量2100, 总额度2000 -> 超额100, 1个计费单位
	want = decimal.RequireFromString("90.50")
	if !got.Equal(want) {
		t.Errorf("期望池成本 %s, 实际 %s", want, got)
	}
}

// TestCostDeterminism 相同输入必须得到相同成本
func TestCostDeterminism(t *testing.T) {
	model := NewCostModel(testWindow(), DefaultCostConfig())
	plan := testPlan(1)
	d := testDevice(1, "1234.5678")

	first := model.Cost(d, plan)
	for i := 0; i < 10; i++ {
		if got := model.Cost(d, plan); !got.Equal(first) {
			t.Fatalf("第%d次计算结果 %s 与首次 %s 不一致", i, got, first)
		}
	}
}
