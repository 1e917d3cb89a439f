package algorithm

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// 控制器依赖的窄接口,由repository、cache和queue提供实现
// 接口收窄到引擎实际用到的操作,便于在测试中用内存实现替换

// DeviceSource 设备视图提供方(外部同步子系统落库的只读数据)
type DeviceSource interface {
	DevicesByGroup(commGroupID uint) ([]models.SimDevice, error)
}

// PlanCatalog 资费计划目录提供方
type PlanCatalog interface {
	PlansByIDs(ids []uint) ([]models.RatePlan, error)
}

// QueueStore 工作单元存储(关系库,状态与成本的唯一事实来源)
type QueueStore interface {
	QueuesByIDs(ids []uint) ([]models.OptimizationQueue, error)
	QueuesByGroup(commGroupID uint) ([]models.OptimizationQueue, error)
	MarkRunning(ids []uint) error
	// CompleteUnits 在单个事务里把所有结果写成终态,避免部分单元可见完成的窗口
	CompleteUnits(results []*define.UnitResult) error
	MarkFailed(ids []uint) error
	OutstandingCount(commGroupID uint) (int64, error)
	// DemoteLosers 对落败单元做行级锁降级(成本作废,状态置为错误完成)
	DemoteLosers(commGroupID, winnerID uint) error
}

// GroupStore 通信组与优化实例存储
type GroupStore interface {
	GroupByID(id uint) (*models.CommGroup, error)
	AbortGroup(commGroupID uint, reason string) error
	FinalizeGroup(group *models.CommGroup) error
	FinalizeInstance(instanceID uint) error
}

// CheckpointStore 检查点存储(TTL缓存,内容是建议性的)
type CheckpointStore interface {
	Save(cp *define.Checkpoint, ttl time.Duration) error
	Load(key string) (*define.Checkpoint, bool)
	Delete(key string)
}

// Publisher 消息发布方
type Publisher interface {
	PublishWork(msg define.WorkMessage)
	PublishCompletion(msg define.CompletionMessage)
}

// AlertSink 告警接收方
type AlertSink interface {
	Raise(event models.AlertEvent, sessionID string, commGroupID, queueID *uint, description string)
}

// RunConfig 控制器运行参数
type RunConfig struct {
	ExecBudget    time.Duration // 单个执行片的预算
	BudgetMargin  time.Duration // 挂起判断的安全余量
	CheckpointTTL time.Duration // 检查点存活时间
	Cost          CostConfig    // 成本模型参数
}

// Controller 优化运行控制器
// 驱动策略执行器完成一个工作单元批次: 预算耗尽时保存检查点并发续传消息,
// 全部算完时在单个事务里写终态并通知协调器
type Controller struct {
	devices     DeviceSource
	plans       PlanCatalog
	queues      QueueStore
	groups      GroupStore
	checkpoints CheckpointStore
	publisher   Publisher
	alerts      AlertSink
	cfg         RunConfig

	now func() time.Time // 预算判断用,测试中可替换
}

// NewController 创建运行控制器
func NewController(
	devices DeviceSource,
	plans PlanCatalog,
	queues QueueStore,
	groups GroupStore,
	checkpoints CheckpointStore,
	publisher Publisher,
	alerts AlertSink,
	cfg RunConfig,
) *Controller {
	return &Controller{
		devices:     devices,
		plans:       plans,
		queues:      queues,
		groups:      groups,
		checkpoints: checkpoints,
		publisher:   publisher,
		alerts:      alerts,
		cfg:         cfg,
		now:         time.Now,
	}
}

// HandleWork 处理一条工作消息(消息调度器的入口)
// 返回error表示基础设施故障,消息会被延迟重投;业务性失败在内部转为终态或告警
func (c *Controller) HandleWork(msg *define.WorkMessage) error {
	sliceStart := c.now()
	key := define.CheckpointKey(msg.SessionID, msg.QueueIDs)

	units, err := c.queues.QueuesByIDs(msg.QueueIDs)
	if err != nil {
		return fmt.Errorf("读取工作单元失败: %w", err)
	}
	if len(units) == 0 {
		log.Printf("[警告] 工作消息引用的单元不存在, 会话: %s, 单元: %v", msg.SessionID, msg.QueueIDs)
		return nil
	}

	// 终态守卫: 至少一次投递下的重复消息在这里吸收,不算错误
	if allTerminal(units) {
		log.Printf("[警告] 重复投递: 单元已全部进入终态, 会话: %s, 单元: %v", msg.SessionID, msg.QueueIDs)
		return nil
	}

	// 续传消息先尝试恢复检查点;缺失或损坏时记录异常并从头重算,绝不复用过期的部分成本
	var results []*define.UnitResult
	var resumeUnit uint
	var resumeDone []define.Strategy
	var resumeBest *define.SolutionSnapshot
	var resumeBaseline decimal.Decimal
	if msg.Chained {
		if cp, ok := c.checkpoints.Load(key); ok {
			results = cp.Results
			resumeUnit = cp.Current
			resumeDone = cp.Done
			resumeBest = cp.Best
			resumeBaseline = cp.Baseline
			log.Printf("从检查点恢复, 会话: %s, 当前单元: %d, 已完成策略数: %d", msg.SessionID, cp.Current, len(cp.Done))
		} else {
			log.Printf("[警告] 续传消息未找到有效检查点, 从头重算, 会话: %s, 单元: %v", msg.SessionID, msg.QueueIDs)
			c.alerts.Raise(models.AlertEventCheckpointLost, msg.SessionID, nil, nil, "检查点丢失或损坏,工作单元从头重算")
		}
	}

	finished := make(map[uint]bool)
	for _, r := range results {
		finished[r.QueueID] = true
	}

	runningIDs := make([]uint, 0, len(units))
	for _, u := range units {
		if !u.Status.IsTerminal() && !finished[u.ID] {
			runningIDs = append(runningIDs, u.ID)
		}
	}
	if err := c.queues.MarkRunning(runningIDs); err != nil {
		return fmt.Errorf("标记单元为Running失败: %w", err)
	}

	window := define.NewBillingWindow(msg.WindowStart, msg.WindowDays)
	model := NewCostModel(window, c.cfg.Cost)
	executor := NewStrategyExecutor(model)

	abortedGroups := make(map[uint]bool)
	var lastStrategyDur time.Duration

	for i := range units {
		unit := &units[i]
		if unit.Status.IsTerminal() || finished[unit.ID] || abortedGroups[unit.CommGroupID] {
			continue
		}

		devices, plans, err := c.loadUnitInputs(unit, msg.ChargeType)
		if err != nil {
			return err
		}
		if plans == nil {
			// 无效配置: 通信组已被终止,重试无法修复坏数据
			abortedGroups[unit.CommGroupID] = true
			continue
		}

		done := []define.Strategy{}
		var best *define.SolutionSnapshot
		var baseline decimal.Decimal
		if unit.ID == resumeUnit {
			done = resumeDone
			best = resumeBest
			baseline = resumeBaseline
		} else {
			baseline, err = c.baselineCost(model, devices, msg.SessionID)
			if err != nil {
				return err
			}
		}

		for _, strategy := range msg.Strategies() {
			if containsStrategy(done, strategy) {
				continue
			}

			// 策略边界预算检查: 剩余预算不足以安全跑完下一种策略时挂起
			// 本执行片至少完成一种策略,保证总能前进
			if lastStrategyDur > 0 && c.remaining(sliceStart) < lastStrategyDur+c.cfg.BudgetMargin {
				return c.suspend(msg, key, results, unit.ID, done, best, baseline)
			}

			started := c.now()
			solution := executor.Run(strategy, devices, plans)
			lastStrategyDur = c.now().Sub(started)

			snap := solution.Snapshot()
			if best == nil || snap.TotalCost.LessThan(best.TotalCost) {
				best = snap
			}
			done = append(done, strategy)
		}

		improved := best != nil && (msg.SkipLowerCostCheck || best.TotalCost.LessThan(baseline))
		results = append(results, &define.UnitResult{
			QueueID:  unit.ID,
			Baseline: baseline,
			Improved: improved,
			Best:     best,
		})
		finished[unit.ID] = true
		resumeUnit, resumeDone, resumeBest = 0, nil, nil
	}

	// 到达Completed: 单个事务里写所有终态,然后清除检查点
	if err := c.queues.CompleteUnits(results); err != nil {
		return fmt.Errorf("写入终态失败: %w", err)
	}
	c.checkpoints.Delete(key)

	c.publishCompletions(msg, units, results, abortedGroups)
	return nil
}

// HandleExhausted 重试次数耗尽时把单元标记为永久失败(消息调度器的耗尽回调)
func (c *Controller) HandleExhausted(msg *define.WorkMessage, cause error) {
	if err := c.queues.MarkFailed(msg.QueueIDs); err != nil {
		log.Printf("[警告] 标记永久失败时出错, 会话: %s, 单元: %v: %v", msg.SessionID, msg.QueueIDs, err)
		return
	}
	c.alerts.Raise(models.AlertEventUnitFailed, msg.SessionID, nil, nil,
		fmt.Sprintf("工作单元 %v 超过重试上限: %v", msg.QueueIDs, cause))

	units, err := c.queues.QueuesByIDs(msg.QueueIDs)
	if err != nil {
		return
	}
	c.publishCompletions(msg, units, nil, nil)
}

// loadUnitInputs 加载单元的设备与候选计划视图
// 候选目录为空或计划参数无效属于配置错误: 终止通信组并告警,返回nil计划表示跳过
func (c *Controller) loadUnitInputs(unit *models.OptimizationQueue, chargeType models.ChargeType) ([]*define.Device, []*define.Plan, error) {
	planIDs, err := unit.PlanIDs()
	if err != nil {
		return nil, nil, fmt.Errorf("解析候选计划列表失败, 单元 %d: %w", unit.ID, err)
	}

	planModels, err := c.plans.PlansByIDs(planIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("读取候选计划失败: %w", err)
	}
	if len(planModels) == 0 {
		c.abortGroup(unit, "候选资费计划目录为空")
		return nil, nil, nil
	}
	for i := range planModels {
		if err := planModels[i].Validate(); err != nil {
			c.abortGroup(unit, fmt.Sprintf("资费计划 %d 参数无效: %v", planModels[i].ID, err))
			return nil, nil, nil
		}
	}

	deviceModels, err := c.devices.DevicesByGroup(unit.CommGroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("读取通信组设备失败: %w", err)
	}

	devices := make([]*define.Device, 0, len(deviceModels))
	for _, m := range deviceModels {
		devices = append(devices, define.NewDevice(m, chargeType))
	}
	plans := make([]*define.Plan, 0, len(planModels))
	for _, m := range planModels {
		plans = append(plans, define.NewPlan(m))
	}
	return devices, plans, nil
}

// abortGroup 因配置无效终止通信组并告警
func (c *Controller) abortGroup(unit *models.OptimizationQueue, reason string) {
	log.Printf("[警告] 通信组 %d 配置无效, 终止优化: %s", unit.CommGroupID, reason)
	if err := c.groups.AbortGroup(unit.CommGroupID, reason); err != nil {
		log.Printf("[警告] 终止通信组 %d 失败: %v", unit.CommGroupID, err)
	}
	groupID := unit.CommGroupID
	queueID := unit.ID
	c.alerts.Raise(models.AlertEventGroupAborted, unit.SessionID, &groupID, &queueID, reason)
}

// baselineCost 计算设备群在当前计划上的优化前基准成本
// 查不到当前计划的设备按0计入并告警,宁可让改善校验更严格也不虚增基准
func (c *Controller) baselineCost(model *CostModel, devices []*define.Device, sessionID string) (decimal.Decimal, error) {
	ids := make([]uint, 0, len(devices))
	seen := make(map[uint]bool)
	for _, d := range devices {
		if d.CurrentPlanID != 0 && !seen[d.CurrentPlanID] {
			seen[d.CurrentPlanID] = true
			ids = append(ids, d.CurrentPlanID)
		}
	}

	planModels, err := c.plans.PlansByIDs(ids)
	if err != nil {
		return decimal.Zero, fmt.Errorf("读取当前计划失败: %w", err)
	}
	byID := make(map[uint]*define.Plan, len(planModels))
	for _, m := range planModels {
		byID[m.ID] = define.NewPlan(m)
	}

	baseline := decimal.Zero
	for _, d := range devices {
		plan, ok := byID[d.CurrentPlanID]
		if !ok {
			log.Printf("[警告] 设备 %d 的当前计划 %d 不在目录中, 基准成本按0计, 会话: %s", d.ID, d.CurrentPlanID, sessionID)
			continue
		}
		baseline = baseline.Add(model.Cost(d, plan))
	}
	return baseline, nil
}

// suspend 预算不足时保存检查点并发出续传消息
// 当前执行片直接退出,不触碰任何单元的终态
func (c *Controller) suspend(msg *define.WorkMessage, key string, results []*define.UnitResult,
	current uint, done []define.Strategy, best *define.SolutionSnapshot, baseline decimal.Decimal) error {

	cp := &define.Checkpoint{
		SessionID: msg.SessionID,
		QueueIDs:  msg.QueueIDs,
		Results:   results,
		Current:   current,
		Done:      done,
		Best:      best,
		Baseline:  baseline,
		SavedAt:   c.now(),
	}
	if err := c.checkpoints.Save(cp, c.cfg.CheckpointTTL); err != nil {
		return fmt.Errorf("保存检查点失败: %w", err)
	}

	cont := *msg
	cont.Chained = true
	cont.RetryCount = 0
	c.publisher.PublishWork(cont)

	log.Printf("执行预算不足, 已保存检查点并续传, 会话: %s, 当前单元: %d, 已完成策略数: %d", msg.SessionID, current, len(done))
	return nil
}

// publishCompletions 按通信组发出完成消息
func (c *Controller) publishCompletions(msg *define.WorkMessage, units []models.OptimizationQueue,
	results []*define.UnitResult, abortedGroups map[uint]bool) {

	improvedByQueue := make(map[uint]bool)
	for _, r := range results {
		improvedByQueue[r.QueueID] = r.Improved
	}

	published := make(map[uint]bool)
	for _, u := range units {
		if published[u.CommGroupID] {
			continue
		}
		published[u.CommGroupID] = true

		success := false
		if abortedGroups == nil || !abortedGroups[u.CommGroupID] {
			for _, other := range units {
				if other.CommGroupID == u.CommGroupID && improvedByQueue[other.ID] {
					success = true
					break
				}
			}
		}
		c.publisher.PublishCompletion(define.CompletionMessage{
			CommGroupID: u.CommGroupID,
			InstanceID:  u.InstanceID,
			SessionID:   msg.SessionID,
			Success:     success,
		})
	}
}

// remaining 当前执行片的剩余预算
func (c *Controller) remaining(sliceStart time.Time) time.Duration {
	return c.cfg.ExecBudget - c.now().Sub(sliceStart)
}

// allTerminal 是否全部单元都已进入终态
func allTerminal(units []models.OptimizationQueue) bool {
	for _, u := range units {
		if !u.Status.IsTerminal() {
			return false
		}
	}
	return true
}

// containsStrategy 策略是否已在完成列表中
func containsStrategy(list []define.Strategy, s define.Strategy) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
