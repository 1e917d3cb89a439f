package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Port     string `yaml:"port"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`
	JWT struct {
		Secret     string `yaml:"secret"`
		Expiration string `yaml:"expiration"`
	} `yaml:"jwt"`
	Optimizer struct {
		BillingPeriodDays int    `yaml:"billing_period_days"` // 账期天数
		ExecBudget        string `yaml:"exec_budget"`         // 单个执行片的时间预算
		BudgetMargin      string `yaml:"budget_margin"`       // 预算安全余量
		CheckpointTTL     string `yaml:"checkpoint_ttl"`      // 检查点存活时长
		UnassignedPenalty string `yaml:"unassigned_penalty"`  // 未分配设备的罚金
		CurrencyPrecision int32  `yaml:"currency_precision"`  // 货币小数位
		PollInitial       string `yaml:"poll_initial"`        // 协调器初始轮询间隔
		PollMax           string `yaml:"poll_max"`            // 协调器最大轮询间隔
		MaxPolls          int    `yaml:"max_polls"`           // 协调器最大轮询次数
	} `yaml:"optimizer"`
	Queue struct {
		Workers     int    `yaml:"workers"`      // 工作协程数量
		BufferSize  int    `yaml:"buffer_size"`  // 消息缓冲区大小
		RequeueBase string `yaml:"requeue_base"` // 重投基础延迟
		RequeueMax  string `yaml:"requeue_max"`  // 重投最大延迟
		MaxRetry    int    `yaml:"max_retry"`    // 最大重试次数
	} `yaml:"queue"`
}

func LoadConfig(filePath string) (*Config, error) {
	config := &Config{}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

// applyDefaults 为缺省的优化器和队列参数填入默认值
func (c *Config) applyDefaults() {
	if c.Optimizer.BillingPeriodDays <= 0 {
		c.Optimizer.BillingPeriodDays = 30
	}
	if c.Optimizer.ExecBudget == "" {
		c.Optimizer.ExecBudget = "90s"
	}
	if c.Optimizer.BudgetMargin == "" {
		c.Optimizer.BudgetMargin = "5s"
	}
	if c.Optimizer.CheckpointTTL == "" {
		c.Optimizer.CheckpointTTL = "24h"
	}
	if c.Optimizer.UnassignedPenalty == "" {
		c.Optimizer.UnassignedPenalty = "100.00"
	}
	if c.Optimizer.CurrencyPrecision <= 0 {
		c.Optimizer.CurrencyPrecision = 2
	}
	if c.Optimizer.PollInitial == "" {
		c.Optimizer.PollInitial = "500ms"
	}
	if c.Optimizer.PollMax == "" {
		c.Optimizer.PollMax = "8s"
	}
	if c.Optimizer.MaxPolls <= 0 {
		c.Optimizer.MaxPolls = 20
	}
	if c.Queue.Workers <= 0 {
		c.Queue.Workers = 4
	}
	if c.Queue.BufferSize <= 0 {
		c.Queue.BufferSize = 256
	}
	if c.Queue.RequeueBase == "" {
		c.Queue.RequeueBase = "2s"
	}
	if c.Queue.RequeueMax == "" {
		c.Queue.RequeueMax = "60s"
	}
	if c.Queue.MaxRetry <= 0 {
		c.Queue.MaxRetry = 5
	}
}

// Duration 解析配置中的时长字符串，非法时返回默认值
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[警告] 时长配置 %q 非法，使用默认值 %v", value, fallback)
		return fallback
	}
	return d
}

func InitConfig() *Config {
	config, err := LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return config
}
