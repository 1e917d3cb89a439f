package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/repository"
)

// maxUnitsPerGroup 单个通信组生成的工作单元上限
// 候选子集取完整目录加逐一剔除单计划的变体,数量随目录线性增长,这里封顶
const maxUnitsPerGroup = 8

type OptimizationService struct {
	deviceRepo *repository.SimDeviceRepository
	planRepo   *repository.RatePlanRepository
	queueRepo  *repository.QueueRepository
	groupRepo  *repository.CommGroupRepository
	alerts     algorithm.AlertSink
	publisher  algorithm.Publisher

	windowDays int
}

func NewOptimizationService(
	deviceRepo *repository.SimDeviceRepository,
	planRepo *repository.RatePlanRepository,
	queueRepo *repository.QueueRepository,
	groupRepo *repository.CommGroupRepository,
	alerts algorithm.AlertSink,
	publisher algorithm.Publisher,
	windowDays int,
) *OptimizationService {
	return &OptimizationService{
		deviceRepo: deviceRepo,
		planRepo:   planRepo,
		queueRepo:  queueRepo,
		groupRepo:  groupRepo,
		alerts:     alerts,
		publisher:  publisher,
		windowDays: windowDays,
	}
}

// StartRequest 发起优化的请求参数
type StartRequest struct {
	ChargeType         models.ChargeType `json:"charge_type"`           // 计费口径
	SkipLowerCostCheck bool              `json:"skip_lower_cost_check"` // 是否跳过成本改善校验
	IndividualOnly     bool              `json:"individual_only"`       // 仅逐设备优化
}

// StartResult 发起优化的结果
type StartResult struct {
	SessionID  string `json:"session_id"`  // 会话ID
	InstanceID uint   `json:"instance_id"` // 优化实例ID
	GroupCount int    `json:"group_count"` // 通信组数量
	UnitCount  int    `json:"unit_count"`  // 工作单元数量
}

// StartOptimization 创建优化实例并投递初始工作消息
// 设备按通信计划类型聚成通信组,每组生成若干候选计划子集的工作单元
func (s *OptimizationService) StartOptimization(req *StartRequest) (*StartResult, error) {
	if req.ChargeType == "" {
		req.ChargeType = models.ChargeTypeData
	}

	devices, err := s.deviceRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("读取设备清单失败: %w", err)
	}
	if len(devices) == 0 {
		return nil, errors.New("没有可参与优化的在网设备")
	}

	sessionID := uuid.NewString()
	instance := &models.OptimizationInstance{
		SessionID:  sessionID,
		ChargeType: req.ChargeType,
		Status:     models.StatusRunning,
	}
	if err := s.groupRepo.CreateInstance(instance); err != nil {
		return nil, fmt.Errorf("创建优化实例失败: %w", err)
	}

	windowStart := time.Now().UTC().Truncate(24 * time.Hour)

	byType := groupDevicesByType(devices)
	result := &StartResult{SessionID: sessionID, InstanceID: instance.ID}

	for _, bucket := range byType {
		group := &models.CommGroup{
			InstanceID:   instance.ID,
			SessionID:    sessionID,
			CommPlanType: bucket.planType,
			Status:       models.StatusPending,
			DeviceCount:  len(bucket.deviceIDs),
			BaselineCost: decimal.Zero,
		}
		if err := s.groupRepo.Create(group); err != nil {
			return nil, fmt.Errorf("创建通信组失败: %w", err)
		}
		if err := s.deviceRepo.AssignGroup(bucket.deviceIDs, group.ID); err != nil {
			return nil, fmt.Errorf("划分通信组失败: %w", err)
		}
		result.GroupCount++

		// 候选目录校验在建组时提前做一次: 坏配置直接终止,不进入队列
		plans, err := s.planRepo.ListByType(bucket.planType)
		if err != nil {
			return nil, fmt.Errorf("读取候选计划失败: %w", err)
		}
		if reason := validateCatalog(plans); reason != "" {
			groupID := group.ID
			s.alerts.Raise(models.AlertEventGroupAborted, sessionID, &groupID, nil, reason)
			if err := s.groupRepo.AbortGroup(group.ID, reason); err != nil {
				return nil, fmt.Errorf("终止通信组失败: %w", err)
			}
			continue
		}

		planIDs := make([]uint, 0, len(plans))
		for _, p := range plans {
			planIDs = append(planIDs, p.ID)
		}

		for _, subset := range planSubsets(planIDs) {
			unit := &models.OptimizationQueue{
				InstanceID:  instance.ID,
				CommGroupID: group.ID,
				SessionID:   sessionID,
				Status:      models.StatusPending,
			}
			if err := unit.SetPlanIDs(subset); err != nil {
				return nil, err
			}
			if err := s.queueRepo.Create(unit); err != nil {
				return nil, fmt.Errorf("创建工作单元失败: %w", err)
			}
			result.UnitCount++

			// 每个单元单独投递,允许独立调度的工作者并行处理
			s.publisher.PublishWork(define.WorkMessage{
				QueueIDs:           []uint{unit.ID},
				SessionID:          sessionID,
				ChargeType:         req.ChargeType,
				WindowStart:        windowStart,
				WindowDays:         s.windowDays,
				SkipLowerCostCheck: req.SkipLowerCostCheck,
				IndividualOnly:     req.IndividualOnly,
			})
		}
	}

	return result, nil
}

// InstanceStatus 优化实例的状态汇总
type InstanceStatus struct {
	Instance *models.OptimizationInstance `json:"instance"`
	Groups   []models.CommGroup           `json:"groups"`
	Units    []models.OptimizationQueue   `json:"units"`
}

// GetInstanceStatus 查询优化实例及其下属通信组与工作单元
func (s *OptimizationService) GetInstanceStatus(sessionID string) (*InstanceStatus, error) {
	instance, err := s.groupRepo.InstanceBySession(sessionID)
	if err != nil {
		return nil, errors.New("优化实例不存在")
	}
	groups, err := s.groupRepo.GroupsByInstance(instance.ID)
	if err != nil {
		return nil, err
	}
	units, err := s.queueRepo.QueuesByInstance(instance.ID)
	if err != nil {
		return nil, err
	}
	return &InstanceStatus{Instance: instance, Groups: groups, Units: units}, nil
}

// ListInstances 获取优化实例列表
func (s *OptimizationService) ListInstances(current, size int) ([]models.OptimizationInstance, int64, error) {
	offset := (current - 1) * size
	return s.groupRepo.ListInstances(offset, size)
}

// deviceBucket 同一通信计划类型的设备桶
type deviceBucket struct {
	planType  string
	deviceIDs []uint
}

// groupDevicesByType 按通信计划类型聚合设备,保持首次出现的顺序
func groupDevicesByType(devices []models.SimDevice) []*deviceBucket {
	byType := make(map[string]*deviceBucket)
	order := make([]string, 0)
	for _, d := range devices {
		b, ok := byType[d.CommPlanType]
		if !ok {
			b = &deviceBucket{planType: d.CommPlanType}
			byType[d.CommPlanType] = b
			order = append(order, d.CommPlanType)
		}
		b.deviceIDs = append(b.deviceIDs, d.ID)
	}

	buckets := make([]*deviceBucket, 0, len(order))
	for _, t := range order {
		buckets = append(buckets, byType[t])
	}
	return buckets
}

// validateCatalog 校验候选目录,返回非空字符串表示不可用的原因
func validateCatalog(plans []models.RatePlan) string {
	if len(plans) == 0 {
		return "候选资费计划目录为空"
	}
	for i := range plans {
		if err := plans[i].Validate(); err != nil {
			return fmt.Sprintf("资费计划 %d 参数无效: %v", plans[i].ID, err)
		}
	}
	return ""
}

// planSubsets 生成候选计划子集: 完整目录加逐一剔除单个计划的变体
// 顺序固定,总量封顶,保证同样的目录永远产生同样的单元集合
func planSubsets(planIDs []uint) [][]uint {
	subsets := [][]uint{planIDs}
	if len(planIDs) < 2 {
		return subsets
	}
	for i := range planIDs {
		if len(subsets) >= maxUnitsPerGroup {
			break
		}
		subset := make([]uint, 0, len(planIDs)-1)
		subset = append(subset, planIDs[:i]...)
		subset = append(subset, planIDs[i+1:]...)
		subsets = append(subsets, subset)
	}
	return subsets
}
