package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// TestGroupDevicesByType 设备按通信计划类型聚组,保持首次出现顺序
func TestGroupDevicesByType(t *testing.T) {
	devices := []models.SimDevice{
		{ID: 1, CommPlanType: "IoT"},
		{ID: 2, CommPlanType: "M2M"},
		{ID: 3, CommPlanType: "IoT"},
		{ID: 4, CommPlanType: "M2M"},
		{ID: 5, CommPlanType: "IoT"},
	}

	buckets := groupDevicesByType(devices)
	if len(buckets) != 2 {
		t.Fatalf("期望2个分组, 实际 %d", len(buckets))
	}
	if buckets[0].planType != "IoT" || buckets[1].planType != "M2M" {
		t.Errorf("分组顺序不正确: %s, %s", buckets[0].planType, buckets[1].planType)
	}
	if len(buckets[0].deviceIDs) != 3 || len(buckets[1].deviceIDs) != 2 {
		t.Errorf("分组设备数不正确: %d, %d", len(buckets[0].deviceIDs), len(buckets[1].deviceIDs))
	}
}

// TestPlanSubsets 候选子集 = 完整目录 + 逐一剔除变体,总量封顶
func TestPlanSubsets(t *testing.T) {
	// 单计划目录只有一个子集
	subsets := planSubsets([]uint{1})
	if len(subsets) != 1 {
		t.Errorf("期望1个子集, 实际 %d", len(subsets))
	}

	// 三计划目录: 完整 + 3个剔除变体
	subsets = planSubsets([]uint{1, 2, 3})
	if len(subsets) != 4 {
		t.Fatalf("期望4个子集, 实际 %d", len(subsets))
	}
	if len(subsets[0]) != 3 {
		t.Errorf("首个子集应为完整目录, 实际 %v", subsets[0])
	}
	for i, want := range [][]uint{{2, 3}, {1, 3}, {1, 2}} {
		got := subsets[i+1]
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("剔除变体 %d: 期望 %v, 实际 %v", i, want, got)
		}
	}

	// 大目录封顶
	big := make([]uint, 20)
	for i := range big {
		big[i] = uint(i + 1)
	}
	if got := len(planSubsets(big)); got != maxUnitsPerGroup {
		t.Errorf("期望封顶 %d 个子集, 实际 %d", maxUnitsPerGroup, got)
	}
}

// TestPlanSubsetsDeterministic 同样的目录必须产生同样的子集序列
func TestPlanSubsetsDeterministic(t *testing.T) {
	first := planSubsets([]uint{5, 3, 8})
	for n := 0; n < 5; n++ {
		again := planSubsets([]uint{5, 3, 8})
		if len(again) != len(first) {
			t.Fatalf("子集数不稳定: %d != %d", len(again), len(first))
		}
		for i := range first {
			for j := range first[i] {
				if again[i][j] != first[i][j] {
					t.Fatalf("子集 %d 不稳定: %v != %v", i, again[i], first[i])
				}
			}
		}
	}
}

// TestValidateCatalog 无效参数的计划让整个目录不可用
func TestValidateCatalog(t *testing.T) {
	valid := models.RatePlan{
		ID:            1,
		OverageRate:   decimal.RequireFromString("10.50"),
		OverageStepMB: decimal.RequireFromString("250"),
	}
	if reason := validateCatalog([]models.RatePlan{valid}); reason != "" {
		t.Errorf("有效目录不应被拒绝: %s", reason)
	}

	if reason := validateCatalog(nil); reason == "" {
		t.Error("空目录应被拒绝")
	}

	invalid := valid
	invalid.ID = 2
	invalid.OverageRate = decimal.Zero
	if reason := validateCatalog([]models.RatePlan{valid, invalid}); reason == "" {
		t.Error("含无效计划的目录应被拒绝")
	}
}
