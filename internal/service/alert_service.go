package service

import (
	"errors"
	"log"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/repository"
)

type AlertService struct {
	alertRepo *repository.AlertRepository
}

// AlertStats 告警统计数据
type AlertStats struct {
	TotalCount    int64 `json:"total_count"`    // 告警总数
	ActiveCount   int64 `json:"active_count"`   // 活跃告警数
	ResolvedCount int64 `json:"resolved_count"` // 已解决告警数
}

func NewAlertService(alertRepo *repository.AlertRepository) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
	}
}

// Raise 记录一条优化告警(引擎的告警出口)
// 告警只是旁路信号,写入失败记日志但绝不打断优化流程
func (s *AlertService) Raise(event models.AlertEvent, sessionID string, commGroupID, queueID *uint, description string) {
	alert := &models.OptimizationAlert{
		EventType:   event,
		Status:      models.AlertStatusActive,
		SessionID:   sessionID,
		CommGroupID: commGroupID,
		QueueID:     queueID,
		Description: description,
	}
	if err := s.alertRepo.Create(alert); err != nil {
		log.Printf("[警告] 写入优化告警失败: %v", err)
	}
}

// GetAlert 获取告警详情
func (s *AlertService) GetAlert(id uint) (*models.OptimizationAlert, error) {
	return s.alertRepo.GetByID(id)
}

// ListAlerts 获取告警列表
func (s *AlertService) ListAlerts(current, size int, filters map[string]interface{}) ([]models.OptimizationAlert, int64, error) {
	return s.alertRepo.List(current, size, filters)
}

// ResolveAlert 把告警标记为已解决
func (s *AlertService) ResolveAlert(id uint) error {
	if _, err := s.alertRepo.GetByID(id); err != nil {
		return errors.New("告警不存在")
	}
	return s.alertRepo.Resolve(id)
}

// GetAlertStats 获取告警统计信息
func (s *AlertService) GetAlertStats() (*AlertStats, error) {
	stats := &AlertStats{}

	var err error
	stats.TotalCount, err = s.alertRepo.Count(nil)
	if err != nil {
		return nil, err
	}

	stats.ActiveCount, err = s.alertRepo.Count(map[string]interface{}{
		"status": models.AlertStatusActive,
	})
	if err != nil {
		return nil, err
	}

	stats.ResolvedCount = stats.TotalCount - stats.ActiveCount
	return stats, nil
}
