package service

import (
	"runtime"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// PendingCounter 提供消息调度器当前积压量
type PendingCounter interface {
	Pending() int64
}

type MonitorService struct {
	broker PendingCounter
}

func NewMonitorService(broker PendingCounter) *MonitorService {
	return &MonitorService{broker: broker}
}

// GetSystemMetrics 获取系统监控指标
func (s *MonitorService) GetSystemMetrics() (*models.SystemMetrics, error) {
	metrics := &models.SystemMetrics{
		Timestamp: time.Now(),
	}

	// 获取CPU使用率
	cpuPercent, err := cpu.Percent(time.Millisecond*100, false)
	if err == nil && len(cpuPercent) > 0 {
		metrics.CPUUsage = cpuPercent[0]
	}

	// 获取内存信息
	memInfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.MemTotal = memInfo.Total
		metrics.MemUsed = memInfo.Used
		metrics.MemFree = memInfo.Free
		metrics.MemUsageRate = memInfo.UsedPercent
	}

	// 获取Goroutine数量
	metrics.GoroutineCount = runtime.NumGoroutine()

	// 获取调度器积压
	if s.broker != nil {
		metrics.QueueDepth = s.broker.Pending()
	}

	return metrics, nil
}
