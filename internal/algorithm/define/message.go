package define

import (
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

// WorkMessage 工作消息(引擎输入)
// 携带一组工作单元ID和本次优化的全部原始参数
// 投递语义为至少一次,消费方必须以终态守卫吸收重复投递
type WorkMessage struct {
	QueueIDs           []uint            `json:"queue_ids"`             // 工作单元ID列表
	SessionID          string            `json:"session_id"`            // 会话ID
	ChargeType         models.ChargeType `json:"charge_type"`           // 计费口径
	WindowStart        time.Time         `json:"window_start"`          // 计费窗口起点(创建实例时固定,跨执行片保持一致)
	WindowDays         int               `json:"window_days"`           // 计费窗口天数
	SkipLowerCostCheck bool              `json:"skip_lower_cost_check"` // 是否跳过成本改善校验
	IndividualOnly     bool              `json:"individual_only"`       // 仅逐设备优化(跳过分组策略)
	Chained            bool              `json:"chained"`               // 续传标志(从检查点恢复)
	RetryCount         int               `json:"retry_count"`           // 重试计数
}

// Strategies 本消息适用的策略集合
func (m *WorkMessage) Strategies() []Strategy {
	if m.IndividualOnly {
		return IndividualStrategies()
	}
	return AllStrategies()
}

// CompletionMessage 完成消息(引擎 → 协调器)
// 通信组的全部工作单元进入终态后触发胜者选择
type CompletionMessage struct {
	CommGroupID uint   `json:"comm_group_id"` // 通信组ID
	InstanceID  uint   `json:"instance_id"`   // 优化实例ID
	SessionID   string `json:"session_id"`    // 会话ID
	Success     bool   `json:"success"`       // 本次完成是否产生了有效结果
	RetryCount  int    `json:"retry_count"`   // 重试计数
}
