package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DefaultConfigPath 默认配置文件位置
func DefaultConfigPath() string {
	return filepath.Join("config", "config.yaml")
}

// WriteFile 将配置序列化为 YAML 写入文件
func WriteFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("cfg 不能为空")
	}
	if path == "" {
		return fmt.Errorf("path 不能为空")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	payload := map[string]any{
		"app": map[string]any{
			"name":      cfg.App.Name,
			"version":   cfg.App.Version,
			"log_level": cfg.App.LogLevel,
			"log_path":  cfg.App.LogPath,
		},
		"storage": map[string]any{
			"db_path": cfg.Storage.DBPath,
		},
		"analytics": map[string]any{
			"fetch_timeout_sec":  cfg.Analytics.FetchTimeoutSec,
			"max_parallel_fetch": cfg.Analytics.MaxParallelFetch,
		},
		"server": map[string]any{
			"listen_addr": cfg.Server.ListenAddr,
		},
		"report": map[string]any{
			"output_dir": cfg.Report.OutputDir,
		},
	}

	b, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
