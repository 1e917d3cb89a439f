package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfig 测试配置文件加载与默认值填充
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "9090"
jwt:
  secret: "test-secret"
  expiration: "24h"
optimizer:
  exec_budget: 45s
  billing_period_days: 28
queue:
  workers: 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("期望端口 9090, 实际 %s", cfg.Port)
	}
	if cfg.Optimizer.ExecBudget != "45s" {
		t.Errorf("期望执行预算 45s, 实际 %s", cfg.Optimizer.ExecBudget)
	}
	if cfg.Optimizer.BillingPeriodDays != 28 {
		t.Errorf("期望账期28天, 实际 %d", cfg.Optimizer.BillingPeriodDays)
	}
	if cfg.Queue.Workers != 8 {
		t.Errorf("期望8个工作者, 实际 %d", cfg.Queue.Workers)
	}

	// 未指定的字段填入默认值
	if cfg.Optimizer.UnassignedPenalty != "100.00" {
		t.Errorf("期望默认罚金 100.00, 实际 %s", cfg.Optimizer.UnassignedPenalty)
	}
	if cfg.Optimizer.CheckpointTTL != "24h" {
		t.Errorf("期望默认检查点TTL 24h, 实际 %s", cfg.Optimizer.CheckpointTTL)
	}
	if cfg.Queue.MaxRetry != 5 {
		t.Errorf("期望默认重试上限5, 实际 %d", cfg.Queue.MaxRetry)
	}
}

// TestLoadConfigMissingFile 配置文件缺失时返回错误
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Error("期望文件缺失返回错误")
	}
}

// TestDuration 时长解析,非法值回退到默认值
func TestDuration(t *testing.T) {
	if got := Duration("45s", time.Minute); got != 45*time.Second {
		t.Errorf("期望45s, 实际 %v", got)
	}
	if got := Duration("不是时长", time.Minute); got != time.Minute {
		t.Errorf("期望回退到1m, 实际 %v", got)
	}
}
