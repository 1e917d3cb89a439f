package define

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SolutionSnapshot 解的可序列化快照
// 只保留恢复和落库所需的分配关系与总成本,不携带池的中间状态
type SolutionSnapshot struct {
	Strategy    Strategy        `json:"strategy"`    // 产生该解的策略
	TotalCost   decimal.Decimal `json:"total_cost"`  // 解的总成本
	Assignments map[uint]uint   `json:"assignments"` // 设备ID -> 资费计划ID
	Unassigned  []uint          `json:"unassigned"`  // 无可用池的设备ID列表
}

// UnitResult 单个工作单元的最终结果
type UnitResult struct {
	QueueID  uint             `json:"queue_id"` // 工作单元ID
	Baseline decimal.Decimal  `json:"baseline"` // 优化前基准成本
	Improved bool             `json:"improved"` // 是否通过成本改善校验
	Best     *SolutionSnapshot `json:"best"`    // 最优解快照(无有效解时为nil)
}

// Checkpoint 控制器在执行片之间保存的部分进度
// 内容是建议性的: 丢失或损坏只会让当前单元从头重算,不会破坏已落库的结果
type Checkpoint struct {
	SessionID string            `json:"session_id"` // 会话ID
	QueueIDs  []uint            `json:"queue_ids"`  // 本消息携带的全部工作单元
	Results   []*UnitResult     `json:"results"`    // 已算完的单元结果
	Current   uint              `json:"current"`    // 当前正在处理的单元
	Done      []Strategy        `json:"done"`       // 当前单元已比较过的策略
	Best      *SolutionSnapshot `json:"best"`       // 当前单元暂存的最优解
	Baseline  decimal.Decimal   `json:"baseline"`   // 当前单元的基准成本
	SavedAt   time.Time         `json:"saved_at"`   // 保存时间
}

// CheckpointKey 由(会话ID, 排序后的工作单元ID)推导检查点键
// 排序保证同一批单元无论消息里的顺序如何都映射到同一个键
func CheckpointKey(sessionID string, queueIDs []uint) string {
	ids := make([]uint, len(queueIDs))
	copy(ids, queueIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return sessionID + ":" + strings.Join(parts, ",")
}

// Validate 校验检查点是否结构完整
// 不完整的检查点按"未找到"处理,由调用方记录告警后从头重算
func (c *Checkpoint) Validate() error {
	if c.SessionID == "" {
		return errors.New("检查点缺少会话ID")
	}
	if len(c.QueueIDs) == 0 {
		return errors.New("检查点缺少工作单元ID")
	}
	if c.Current == 0 {
		return errors.New("检查点缺少当前工作单元")
	}
	return nil
}

// Key 该检查点自身的存储键
func (c *Checkpoint) Key() string {
	return CheckpointKey(c.SessionID, c.QueueIDs)
}
