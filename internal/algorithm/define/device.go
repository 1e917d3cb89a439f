package define

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

var bytesPerMB = decimal.NewFromInt(1024 * 1024)

// Device 优化引擎内的设备视图(从models.SimDevice构造,引擎只读,绝不回写)
type Device struct {
	ID            uint            // 设备ID
	ICCID         string          // SIM卡ICCID
	UsageMB       decimal.Decimal // 参与优化的用量(按计费口径换算)
	CurrentPlanID uint            // 当前资费计划ID
	CommPlanID    uint            // 通信计划目录ID
	CommPlanType  string          // 通信计划类型
	ActivatedAt   time.Time       // 激活时间
}

// NewDevice 从持久化模型构造引擎设备视图
// chargeType决定参与优化的用量口径: 数据口径取流量,短信口径取条数
func NewDevice(m models.SimDevice, chargeType models.ChargeType) *Device {
	usage := decimal.NewFromInt(m.UsageBytes).Div(bytesPerMB)
	if chargeType == models.ChargeTypeSMS {
		usage = decimal.NewFromInt(m.UsageMessages)
	}
	return &Device{
		ID:            m.ID,
		ICCID:         m.ICCID,
		UsageMB:       usage,
		CurrentPlanID: m.RatePlanID,
		CommPlanID:    m.CommPlanID,
		CommPlanType:  m.CommPlanType,
		ActivatedAt:   m.ActivatedAt,
	}
}

// BillingWindow 计费周期窗口
type BillingWindow struct {
	Start time.Time // 周期起始
	End   time.Time // 周期结束
}

// NewBillingWindow 以指定天数构造从start开始的计费窗口
func NewBillingWindow(start time.Time, days int) BillingWindow {
	return BillingWindow{Start: start, End: start.AddDate(0, 0, days)}
}

// Days 窗口总天数
func (w BillingWindow) Days() int64 {
	return int64(w.End.Sub(w.Start).Hours() / 24)
}

// RemainingDays 从from起到窗口结束的剩余天数(折算基础费用用)
// from早于窗口起点按整个窗口计,晚于窗口终点按0计
func (w BillingWindow) RemainingDays(from time.Time) int64 {
	if from.Before(w.Start) {
		from = w.Start
	}
	if !from.Before(w.End) {
		return 0
	}
	return int64(w.End.Sub(from).Hours() / 24)
}
