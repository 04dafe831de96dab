package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 TASKBOARD_STORAGE_DB_PATH
const EnvPrefix = "TASKBOARD"

// Config 应用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Server    ServerConfig    `mapstructure:"server"`
	Report    ReportConfig    `mapstructure:"report"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"` // 为空只输出到 stdout
}

// StorageConfig 存储配置
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// AnalyticsConfig 统计取数配置
type AnalyticsConfig struct {
	FetchTimeoutSec  int `mapstructure:"fetch_timeout_sec"`
	MaxParallelFetch int `mapstructure:"max_parallel_fetch"`
}

// FetchTimeout 取数超时
func (c AnalyticsConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// ReportConfig 报表输出配置
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	cfg, _, err := LoadViper(configPath)
	return cfg, err
}

// LoadViper 加载配置并返回底层 viper 实例（serve 需要监听文件变更）
func LoadViper(configPath string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("配置文件未找到，使用默认配置")
		} else {
			return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		slog.Debug("加载配置文件", "path", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Decode 从 viper 解析配置并做归一化
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.Storage.DBPath = resolvePath(cfg.Storage.DBPath)
	if cfg.App.LogPath != "" {
		cfg.App.LogPath = resolvePath(cfg.App.LogPath)
	}
	if cfg.Analytics.MaxParallelFetch <= 0 {
		cfg.Analytics.MaxParallelFetch = 1
	}
	if cfg.Analytics.FetchTimeoutSec < 0 {
		cfg.Analytics.FetchTimeoutSec = 0
	}
	return &cfg, nil
}

// Default 仅包含默认值的配置（config init 使用），路径保持相对
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("默认配置无法解析: %v", err))
	}
	return &cfg
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "taskboard")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_path", "")

	// Storage
	v.SetDefault("storage.db_path", "./data/taskboard.db")

	// Analytics
	v.SetDefault("analytics.fetch_timeout_sec", 10)
	v.SetDefault("analytics.max_parallel_fetch", 4)

	// Server
	v.SetDefault("server.listen_addr", "127.0.0.1:8420")

	// Report
	v.SetDefault("report.output_dir", "./reports")
}

// resolvePath 相对路径按当前工作目录解析为绝对路径
func resolvePath(path string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}
