package algorithm

import (
	"fmt"
	"log"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// ReportNotifier 下游报表/通知协作方(外部系统,本仓库只定义契约)
type ReportNotifier interface {
	NotifyReport(commGroupID uint, sessionID string, success bool)
}

// LogReportNotifier 默认的报表通知实现,只记录日志
// 只有成功终态的通信组才会触发下游报表,终止和失败的组绝不产生误导性报表
type LogReportNotifier struct{}

// NotifyReport 记录报表触发日志
func (LogReportNotifier) NotifyReport(commGroupID uint, sessionID string, success bool) {
	log.Printf("通知下游报表: 通信组 %d, 会话: %s, 成功: %v", commGroupID, sessionID, success)
}

// CoordinatorConfig 协调器运行参数
type CoordinatorConfig struct {
	PollInitial time.Duration // 首次轮询等待
	PollMax     time.Duration // 轮询等待上限
	MaxPolls    int           // 轮询次数上限,超过后按已完成结果收尾
}

// Coordinator 胜者选择/完成协调器
// 独立调度的进程: 等待通信组的全部工作单元进入终态,选出成本最低的成功单元,
// 幂等地固化通信组和优化实例的最终状态
type Coordinator struct {
	queues   QueueStore
	groups   GroupStore
	alerts   AlertSink
	reporter ReportNotifier
	cfg      CoordinatorConfig

	sleep func(time.Duration) // 退避等待,测试中可替换
}

// NewCoordinator 创建完成协调器
func NewCoordinator(queues QueueStore, groups GroupStore, alerts AlertSink, reporter ReportNotifier, cfg CoordinatorConfig) *Coordinator {
	return &Coordinator{
		queues:   queues,
		groups:   groups,
		alerts:   alerts,
		reporter: reporter,
		cfg:      cfg,
		sleep:    time.Sleep,
	}
}

// HandleCompletion 处理一条完成消息(消息调度器的入口)
func (co *Coordinator) HandleCompletion(msg *define.CompletionMessage) error {
	group, err := co.groups.GroupByID(msg.CommGroupID)
	if err != nil {
		return fmt.Errorf("读取通信组失败: %w", err)
	}

	// 幂等守卫: 通信组已终态时本次调用是无操作,记录为重复而不是错误
	// 仍要尝试固化实例,保证被终止的组也能推动实例收尾
	if group.Status.IsTerminal() {
		log.Printf("[警告] 重复投递: 通信组 %d 已是终态 %s, 忽略", group.ID, group.Status)
		return co.groups.FinalizeInstance(group.InstanceID)
	}

	// 指数退避轮询未完成单元数,容忍多工作者异步推进
	if outstanding := co.waitForGroup(group.ID); outstanding > 0 {
		log.Printf("[警告] 等待超时, 通信组 %d 仍有 %d 个单元未完成, 按已完成结果收尾", group.ID, outstanding)
		groupID := group.ID
		co.alerts.Raise(models.AlertEventCoordTimeout, msg.SessionID, &groupID, nil,
			fmt.Sprintf("协调器等待超时, 仍有 %d 个单元未完成", outstanding))
	}

	units, err := co.queues.QueuesByGroup(group.ID)
	if err != nil {
		return fmt.Errorf("读取通信组单元失败: %w", err)
	}

	winner := selectWinner(units)
	now := time.Now()
	if winner != nil {
		// 固化胜者,其余单元行级锁降级,防止并发收尾互相竞争
		if err := co.queues.DemoteLosers(group.ID, winner.ID); err != nil {
			return fmt.Errorf("降级落败单元失败: %w", err)
		}
		winnerID := winner.ID
		group.WinnerQueueID = &winnerID
		group.Status = models.StatusCompleteWithSuccess
		log.Printf("通信组 %d 胜者: 单元 %d, 成本: %s, 策略: %s", group.ID, winner.ID, winner.TotalCost, define.Strategy(winner.Strategy))
	} else {
		group.Status = models.StatusCompleteWithErrors
		log.Printf("通信组 %d 没有产生有效结果", group.ID)
	}
	group.CompletedAt = &now

	if err := co.groups.FinalizeGroup(group); err != nil {
		return fmt.Errorf("固化通信组失败: %w", err)
	}
	if err := co.groups.FinalizeInstance(group.InstanceID); err != nil {
		return fmt.Errorf("固化优化实例失败: %w", err)
	}

	co.reporter.NotifyReport(group.ID, msg.SessionID, winner != nil)
	return nil
}

// waitForGroup 指数退避等待通信组的全部单元进入终态
// 返回等待结束时仍未完成的单元数(0表示全部完成)
func (co *Coordinator) waitForGroup(commGroupID uint) int64 {
	delay := co.cfg.PollInitial
	var outstanding int64

	for poll := 0; poll <= co.cfg.MaxPolls; poll++ {
		count, err := co.queues.OutstandingCount(commGroupID)
		if err != nil {
			log.Printf("[警告] 查询未完成单元数失败, 通信组 %d: %v", commGroupID, err)
			count = outstanding
		}
		outstanding = count
		if outstanding == 0 {
			return 0
		}

		co.sleep(delay)
		delay *= 2
		if delay > co.cfg.PollMax {
			delay = co.cfg.PollMax
		}
	}
	return outstanding
}

// selectWinner 在成功完成的单元中挑出成本最低者,成本相同取单元ID较小者
func selectWinner(units []models.OptimizationQueue) *models.OptimizationQueue {
	var winner *models.OptimizationQueue
	for i := range units {
		u := &units[i]
		if u.Status != models.StatusCompleteWithSuccess || u.TotalCost == nil {
			continue
		}
		if winner == nil {
			winner = u
			continue
		}
		cmp := u.TotalCost.Cmp(*winner.TotalCost)
		if cmp < 0 || (cmp == 0 && u.ID < winner.ID) {
			winner = u
		}
	}
	return winner
}
