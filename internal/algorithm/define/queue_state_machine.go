package define

import (
	"fmt"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// QueueStateMachine 工作单元状态机
// 状态和时间戳只在这里流转,保证非法迁移在进入数据库之前就被拒绝
type QueueStateMachine struct {
	queue *models.OptimizationQueue
}

// NewQueueStateMachine 创建工作单元状态机
func NewQueueStateMachine(queue *models.OptimizationQueue) *QueueStateMachine {
	return &QueueStateMachine{queue: queue}
}

// 状态转换方法

// ToRunning 转换到Running状态(单元被工作者领取)
// 续传消息会让同一单元多次进入Running,属合法迁移
func (sm *QueueStateMachine) ToRunning() error {
	if sm.queue.Status != models.StatusPending && sm.queue.Status != models.StatusRunning {
		return fmt.Errorf("invalid state transition: %s -> Running", sm.queue.Status)
	}
	sm.queue.Status = models.StatusRunning
	sm.queue.RunCount++
	return nil
}

// ToCompleteWithSuccess 转换到CompleteWithSuccess状态并记录最优解
func (sm *QueueStateMachine) ToCompleteWithSuccess(result *UnitResult) error {
	if sm.queue.Status.IsTerminal() {
		return fmt.Errorf("invalid state transition: %s -> CompleteWithSuccess", sm.queue.Status)
	}
	now := time.Now()
	cost := result.Best.TotalCost
	sm.queue.Status = models.StatusCompleteWithSuccess
	sm.queue.TotalCost = &cost
	sm.queue.Strategy = int(result.Best.Strategy)
	sm.queue.CompletedAt = &now
	return nil
}

// ToCompleteWithErrors 转换到CompleteWithErrors状态(无改善或失败)
func (sm *QueueStateMachine) ToCompleteWithErrors() error {
	if sm.queue.Status.IsTerminal() {
		return fmt.Errorf("invalid state transition: %s -> CompleteWithErrors", sm.queue.Status)
	}
	now := time.Now()
	sm.queue.Status = models.StatusCompleteWithErrors
	sm.queue.TotalCost = nil
	sm.queue.CompletedAt = &now
	return nil
}

// 状态查询方法

// CanTransitionTo 检查是否可以转换到目标状态
func (sm *QueueStateMachine) CanTransitionTo(target models.OptimizationStatus) bool {
	current := sm.queue.Status
	switch target {
	case models.StatusRunning:
		return current == models.StatusPending || current == models.StatusRunning
	case models.StatusCompleteWithSuccess, models.StatusCompleteWithErrors:
		return !current.IsTerminal()
	default:
		return false
	}
}

// IsTerminal 是否已进入终态
func (sm *QueueStateMachine) IsTerminal() bool {
	return sm.queue.Status.IsTerminal()
}

// IsPending 是否等待调度
func (sm *QueueStateMachine) IsPending() bool {
	return sm.queue.Status == models.StatusPending
}

// IsRunning 是否计算中
func (sm *QueueStateMachine) IsRunning() bool {
	return sm.queue.Status == models.StatusRunning
}

// GetStatus 获取当前状态
func (sm *QueueStateMachine) GetStatus() models.OptimizationStatus {
	return sm.queue.Status
}
