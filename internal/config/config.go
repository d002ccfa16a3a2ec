package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v8"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver" env:"DB_DRIVER"`
		Host     string `yaml:"host" env:"DB_HOST"`
		Port     string `yaml:"port" env:"DB_PORT"`
		Username string `yaml:"username" env:"DB_USERNAME"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		DBName   string `yaml:"dbname" env:"DB_NAME"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		ExpireTime int    `yaml:"expire_time" env:"JWT_EXPIRE_TIME"` // 秒
	} `yaml:"jwt"`

	Log struct {
		Level    string `yaml:"level" env:"LOG_LEVEL"`         // 日志级别: debug, info, warn, error
		Format   string `yaml:"format" env:"LOG_FORMAT"`       // 日志格式: json, text
		Output   string `yaml:"output" env:"LOG_OUTPUT"`       // 输出方式: console, file, both
		FilePath string `yaml:"file_path" env:"LOG_FILE_PATH"` // 日志文件路径
	} `yaml:"log"`

	Order struct {
		PaymentDeadlineDays  int `yaml:"payment_deadline_days" env:"ORDER_PAYMENT_DEADLINE_DAYS"`   // 付款期限（天）
		SweepIntervalMinutes int `yaml:"sweep_interval_minutes" env:"ORDER_SWEEP_INTERVAL_MINUTES"` // 过期订单扫描间隔（分钟）
		NumberMaxAttempts    int `yaml:"number_max_attempts" env:"ORDER_NUMBER_MAX_ATTEMPTS"`       // 订单号冲突重试次数
	} `yaml:"order"`
}

var GlobalConfig *Config

func Load() (*Config, error) {
	if GlobalConfig != nil {
		return GlobalConfig, nil
	}

	// 获取配置文件路径
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("获取工作目录失败: %v", err)
		}

		configPath = filepath.Join(workDir, "config", "config.yaml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = filepath.Join(workDir, "config.yaml")
		}
	}

	// 读取配置文件
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %v", configPath, err)
	}

	// 解析配置文件
	config := &Config{}
	err = yaml.Unmarshal(configFile, config)
	if err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	// 环境变量优先于配置文件
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %v", err)
	}

	applyDefaults(config)

	GlobalConfig = config
	return config, nil
}

// applyDefaults 设置默认值
func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.Mode == "" {
		config.Server.Mode = "debug"
	}

	// 日志配置默认值
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
	if config.Log.Output == "" {
		config.Log.Output = "console"
	}
	if config.Log.FilePath == "" {
		config.Log.FilePath = "logs/app.log"
	}

	if config.JWT.ExpireTime == 0 {
		config.JWT.ExpireTime = 86400 // 1天
	}

	// 订单配置默认值
	if config.Order.PaymentDeadlineDays == 0 {
		config.Order.PaymentDeadlineDays = 3
	}
	if config.Order.SweepIntervalMinutes == 0 {
		config.Order.SweepIntervalMinutes = 60
	}
	if config.Order.NumberMaxAttempts == 0 {
		config.Order.NumberMaxAttempts = 3
	}
}
