package algorithm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

func cost(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// coordinatorScenario 构造一个全部单元已终态的通信组
func coordinatorScenario() (*engineFake, *define.CompletionMessage) {
	f := newEngineFake()
	f.groups[1] = &models.CommGroup{ID: 1, InstanceID: 1, SessionID: "s1", Status: models.StatusRunning}

	f.queues[1] = &models.OptimizationQueue{ID: 1, InstanceID: 1, CommGroupID: 1, Status: models.StatusCompleteWithSuccess, TotalCost: cost("100.50")}
	f.queues[2] = &models.OptimizationQueue{ID: 2, InstanceID: 1, CommGroupID: 1, Status: models.StatusCompleteWithSuccess, TotalCost: cost("95.50")}
	f.queues[3] = &models.OptimizationQueue{ID: 3, InstanceID: 1, CommGroupID: 1, Status: models.StatusCompleteWithErrors}

	msg := &define.CompletionMessage{CommGroupID: 1, InstanceID: 1, SessionID: "s1", Success: true}
	return f, msg
}

func newTestCoordinator(f *engineFake) *Coordinator {
	co := NewCoordinator(f, f, f, f, CoordinatorConfig{
		PollInitial: time.Millisecond,
		PollMax:     4 * time.Millisecond,
		MaxPolls:    3,
	})
	co.sleep = func(time.Duration) {}
	return co
}

// TestWinnerSelection 在成功单元中选出成本最低者,落败单元降级
func TestWinnerSelection(t *testing.T) {
	f, msg := coordinatorScenario()
	co := newTestCoordinator(f)

	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("处理完成消息失败: %v", err)
	}

	group := f.groups[1]
	if group.Status != models.StatusCompleteWithSuccess {
		t.Errorf("期望通信组状态 %s, 实际 %s", models.StatusCompleteWithSuccess, group.Status)
	}
	if group.WinnerQueueID == nil || *group.WinnerQueueID != 2 {
		t.Errorf("期望胜者为单元2, 实际 %v", group.WinnerQueueID)
	}
	// 落败单元成本作废
	if f.queues[1].Status != models.StatusCompleteWithErrors || f.queues[1].TotalCost != nil {
		t.Errorf("落败单元未被降级: 状态 %s, 成本 %v", f.queues[1].Status, f.queues[1].TotalCost)
	}
	// 胜者保持成功终态
	if f.queues[2].Status != models.StatusCompleteWithSuccess {
		t.Errorf("胜者状态被破坏: %s", f.queues[2].Status)
	}
	if f.finalized[1] != 1 {
		t.Errorf("期望固化实例1次, 实际 %d", f.finalized[1])
	}
	if len(f.reports) != 1 || !f.reports[0] {
		t.Errorf("期望1次成功报表通知, 实际 %+v", f.reports)
	}
}

// TestWinnerTieBreakLowerID 成本相同取单元ID较小者
func TestWinnerTieBreakLowerID(t *testing.T) {
	f, msg := coordinatorScenario()
	f.queues[1].TotalCost = cost("95.50")

	co := newTestCoordinator(f)
	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("处理完成消息失败: %v", err)
	}

	if f.groups[1].WinnerQueueID == nil || *f.groups[1].WinnerQueueID != 1 {
		t.Errorf("期望胜者为单元1, 实际 %v", f.groups[1].WinnerQueueID)
	}
}

// TestNoValidResults 没有成功单元时通信组以错误完成收尾
func TestNoValidResults(t *testing.T) {
	f, msg := coordinatorScenario()
	f.queues[1].Status = models.StatusCompleteWithErrors
	f.queues[1].TotalCost = nil
	f.queues[2].Status = models.StatusCompleteWithErrors
	f.queues[2].TotalCost = nil

	co := newTestCoordinator(f)
	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("处理完成消息失败: %v", err)
	}

	group := f.groups[1]
	if group.Status != models.StatusCompleteWithErrors {
		t.Errorf("期望通信组状态 %s, 实际 %s", models.StatusCompleteWithErrors, group.Status)
	}
	if group.WinnerQueueID != nil {
		t.Errorf("无有效结果时不应有胜者, 实际 %v", group.WinnerQueueID)
	}
	if len(f.reports) != 1 || f.reports[0] {
		t.Errorf("期望1次失败报表通知, 实际 %+v", f.reports)
	}
}

// TestDuplicateCompletionNoop 终态通信组的重复完成消息是无操作
func TestDuplicateCompletionNoop(t *testing.T) {
	f, msg := coordinatorScenario()
	co := newTestCoordinator(f)

	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("首次处理失败: %v", err)
	}
	winnerAfterFirst := *f.groups[1].WinnerQueueID

	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("重复投递不应返回错误: %v", err)
	}
	if *f.groups[1].WinnerQueueID != winnerAfterFirst {
		t.Errorf("重复投递改变了胜者: %d -> %d", winnerAfterFirst, *f.groups[1].WinnerQueueID)
	}
	if len(f.reports) != 1 {
		t.Errorf("重复投递不应再次通知报表, 实际 %d 次", len(f.reports))
	}
	// 重复消息仍要推动实例收尾
	if f.finalized[1] != 2 {
		t.Errorf("期望固化实例2次, 实际 %d", f.finalized[1])
	}
}

// TestCoordinatorTimeout 等待超时后告警并按已完成结果收尾
func TestCoordinatorTimeout(t *testing.T) {
	f, msg := coordinatorScenario()
	// 单元3永远停在Running
	f.queues[3].Status = models.StatusRunning

	co := newTestCoordinator(f)
	var polls int
	co.sleep = func(time.Duration) { polls++ }

	if err := co.HandleCompletion(msg); err != nil {
		t.Fatalf("处理完成消息失败: %v", err)
	}

	if polls == 0 {
		t.Error("期望协调器进行过退避等待")
	}
	if !f.hasAlert(models.AlertEventCoordTimeout) {
		t.Error("期望产生协调超时告警")
	}
	// 已完成的单元中仍能选出胜者
	if f.groups[1].WinnerQueueID == nil || *f.groups[1].WinnerQueueID != 2 {
		t.Errorf("期望胜者为单元2, 实际 %v", f.groups[1].WinnerQueueID)
	}
}
