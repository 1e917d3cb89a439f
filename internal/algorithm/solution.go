package algorithm

import (
	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// Solution 一次策略执行产生的完整分配方案
// 不变式: 每个设备恰好出现在一个池或未分配列表中
type Solution struct {
	Strategy   define.Strategy  // 产生该方案的策略
	Pools      []*RatePool      // 按计划ID升序的资费池
	Unassigned []*define.Device // 没有任何可用池的设备(按罚金计价,绝不静默丢弃)

	penalty decimal.Decimal // 每个未分配设备的罚金
}

// TotalCost 方案总成本 = 各池聚合成本之和 + 未分配罚金
func (s *Solution) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, pool := range s.Pools {
		total = total.Add(pool.TotalCost())
	}
	penalty := s.penalty.Mul(decimal.NewFromInt(int64(len(s.Unassigned))))
	return total.Add(penalty)
}

// DeviceCount 方案覆盖的设备总数
func (s *Solution) DeviceCount() int {
	count := len(s.Unassigned)
	for _, pool := range s.Pools {
		count += pool.Size()
	}
	return count
}

// Snapshot 生成可序列化的方案快照(用于检查点和落库)
func (s *Solution) Snapshot() *define.SolutionSnapshot {
	snap := &define.SolutionSnapshot{
		Strategy:    s.Strategy,
		TotalCost:   s.TotalCost(),
		Assignments: make(map[uint]uint),
		Unassigned:  make([]uint, 0, len(s.Unassigned)),
	}
	for _, pool := range s.Pools {
		for _, d := range pool.Devices() {
			snap.Assignments[d.ID] = pool.Plan.ID
		}
	}
	for _, d := range s.Unassigned {
		snap.Unassigned = append(snap.Unassigned, d.ID)
	}
	return snap
}
