package algorithm

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// RatePool 候选解中一个资费计划的设备桶
// 每次策略执行单独创建,策略比较后除保留的最优解外全部丢弃
type RatePool struct {
	Plan *define.Plan

	model     *CostModel
	devices   map[uint]*define.Device
	order     []uint          // 插入顺序,保证聚合计算的确定性
	totalCost decimal.Decimal // 当前池的聚合成本
}

// NewRatePool 创建空的资费池
func NewRatePool(plan *define.Plan, model *CostModel) *RatePool {
	return &RatePool{
		Plan:    plan,
		model:   model,
		devices: make(map[uint]*define.Device),
		order:   make([]uint, 0),
	}
}

// Eligible 设备是否允许进入该池
func (rp *RatePool) Eligible(d *define.Device) bool {
	return rp.Plan.Eligible(d)
}

// Contains 设备是否已在池内
func (rp *RatePool) Contains(deviceID uint) bool {
	_, ok := rp.devices[deviceID]
	return ok
}

// Size 池内设备数量
func (rp *RatePool) Size() int {
	return len(rp.order)
}

// TotalCost 池的当前聚合成本
func (rp *RatePool) TotalCost() decimal.Decimal {
	return rp.totalCost
}

// Devices 按插入顺序返回池内设备
func (rp *RatePool) Devices() []*define.Device {
	out := make([]*define.Device, 0, len(rp.order))
	for _, id := range rp.order {
		out = append(out, rp.devices[id])
	}
	return out
}

// RemainingSharedMB 共享池的剩余额度(仅对支持池化的计划有意义)
func (rp *RatePool) RemainingSharedMB() decimal.Decimal {
	if !rp.Plan.Poolable {
		return decimal.Zero
	}
	allowance := rp.Plan.IncludedMB.Mul(decimal.NewFromInt(int64(len(rp.order))))
	used := decimal.Zero
	for _, id := range rp.order {
		used = used.Add(rp.devices[id].UsageMB)
	}
	remaining := allowance.Sub(used)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// MarginalCost 把单个设备加入该池的边际成本(不修改池状态)
// 设备类型不匹配时返回false,该池不参与候选
func (rp *RatePool) MarginalCost(d *define.Device) (decimal.Decimal, bool) {
	if !rp.Eligible(d) {
		return decimal.Zero, false
	}
	if !rp.Plan.Poolable {
		return rp.model.Cost(d, rp.Plan), true
	}
	withDevice := append(rp.Devices(), d)
	return rp.model.PooledCost(withDevice, rp.Plan).Sub(rp.totalCost), true
}

// MarginalGroupCost 把一组设备整体加入该池的边际成本(不修改池状态)
// 组内任何设备不匹配则整组不进入该池
func (rp *RatePool) MarginalGroupCost(group []*define.Device) (decimal.Decimal, bool) {
	for _, d := range group {
		if !rp.Eligible(d) {
			return decimal.Zero, false
		}
	}
	if !rp.Plan.Poolable {
		sum := decimal.Zero
		for _, d := range group {
			sum = sum.Add(rp.model.Cost(d, rp.Plan))
		}
		return sum, true
	}
	withGroup := append(rp.Devices(), group...)
	return rp.model.PooledCost(withGroup, rp.Plan).Sub(rp.totalCost), true
}

// AddDevice 把设备加入池并重算聚合成本
func (rp *RatePool) AddDevice(d *define.Device) error {
	if !rp.Eligible(d) {
		return fmt.Errorf("设备 %d 的通信计划类型 %q 与计划 %d 不匹配", d.ID, d.CommPlanType, rp.Plan.ID)
	}
	if rp.Contains(d.ID) {
		return fmt.Errorf("设备 %d 已在计划 %d 的池中", d.ID, rp.Plan.ID)
	}
	rp.devices[d.ID] = d
	rp.order = append(rp.order, d.ID)
	rp.recompute()
	return nil
}

// RemoveDevice 把设备移出池并重算聚合成本
func (rp *RatePool) RemoveDevice(deviceID uint) bool {
	if !rp.Contains(deviceID) {
		return false
	}
	delete(rp.devices, deviceID)
	for i, id := range rp.order {
		if id == deviceID {
			rp.order = append(rp.order[:i], rp.order[i+1:]...)
			break
		}
	}
	rp.recompute()
	return true
}

// recompute 重算池的聚合成本
func (rp *RatePool) recompute() {
	if rp.Plan.Poolable {
		rp.totalCost = rp.model.PooledCost(rp.Devices(), rp.Plan)
		return
	}
	sum := decimal.Zero
	for _, id := range rp.order {
		sum = sum.Add(rp.model.Cost(rp.devices[id], rp.Plan))
	}
	rp.totalCost = sum
}
