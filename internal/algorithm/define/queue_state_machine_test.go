package define

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// TestToRunningTransitions 测试进入Running的合法与非法迁移
func TestToRunningTransitions(t *testing.T) {
	q := &models.OptimizationQueue{Status: models.StatusPending}
	sm := NewQueueStateMachine(q)

	if err := sm.ToRunning(); err != nil {
		t.Fatalf("Pending -> Running 失败: %v", err)
	}
	if q.RunCount != 1 {
		t.Errorf("期望执行计数1, 实际 %d", q.RunCount)
	}

	// 续传消息允许Running -> Running
	if err := sm.ToRunning(); err != nil {
		t.Fatalf("Running -> Running 失败: %v", err)
	}
	if q.RunCount != 2 {
		t.Errorf("期望执行计数2, 实际 %d", q.RunCount)
	}

	// 终态后不允许再进入Running
	q.Status = models.StatusCompleteWithSuccess
	if err := sm.ToRunning(); err == nil {
		t.Error("期望终态拒绝进入Running")
	}
}

// TestToCompleteWithSuccess 测试成功完成时写入最优解
func TestToCompleteWithSuccess(t *testing.T) {
	q := &models.OptimizationQueue{Status: models.StatusRunning}
	sm := NewQueueStateMachine(q)

	result := &UnitResult{
		QueueID:  1,
		Improved: true,
		Best: &SolutionSnapshot{
			Strategy:  StrategyGroupedSmallestFirst,
			TotalCost: decimal.RequireFromString("95.50"),
		},
	}
	if err := sm.ToCompleteWithSuccess(result); err != nil {
		t.Fatalf("Running -> CompleteWithSuccess 失败: %v", err)
	}
	if q.TotalCost == nil || !q.TotalCost.Equal(decimal.RequireFromString("95.50")) {
		t.Errorf("期望成本 95.50, 实际 %v", q.TotalCost)
	}
	if q.Strategy != int(StrategyGroupedSmallestFirst) {
		t.Errorf("期望策略 %d, 实际 %d", int(StrategyGroupedSmallestFirst), q.Strategy)
	}
	if q.CompletedAt == nil {
		t.Error("期望写入完成时间")
	}

	// 终态不可再次迁移
	if err := sm.ToCompleteWithErrors(); err == nil {
		t.Error("期望终态拒绝再次迁移")
	}
}

// TestToCompleteWithErrors 测试错误完成时成本作废
func TestToCompleteWithErrors(t *testing.T) {
	c := decimal.RequireFromString("10.00")
	q := &models.OptimizationQueue{Status: models.StatusRunning, TotalCost: &c}
	sm := NewQueueStateMachine(q)

	if err := sm.ToCompleteWithErrors(); err != nil {
		t.Fatalf("Running -> CompleteWithErrors 失败: %v", err)
	}
	if q.TotalCost != nil {
		t.Errorf("错误完成后成本应作废, 实际 %v", q.TotalCost)
	}
}

// TestCanTransitionTo 测试迁移可行性查询
func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from   models.OptimizationStatus
		to     models.OptimizationStatus
		expect bool
	}{
		{models.StatusPending, models.StatusRunning, true},
		{models.StatusRunning, models.StatusRunning, true},
		{models.StatusRunning, models.StatusCompleteWithSuccess, true},
		{models.StatusPending, models.StatusCompleteWithErrors, true},
		{models.StatusCompleteWithSuccess, models.StatusRunning, false},
		{models.StatusAborted, models.StatusCompleteWithSuccess, false},
		{models.StatusRunning, models.StatusPending, false},
	}

	for _, tc := range cases {
		sm := NewQueueStateMachine(&models.OptimizationQueue{Status: tc.from})
		if got := sm.CanTransitionTo(tc.to); got != tc.expect {
			t.Errorf("%s -> %s: 期望 %v, 实际 %v", tc.from, tc.to, tc.expect, got)
		}
	}
}
