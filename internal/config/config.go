package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full TaskFlow configuration
type Config struct {
	API   APIConfig   `json:"api"`
	Cache CacheConfig `json:"cache"`
	UI    UIConfig    `json:"ui"`
}

// APIConfig contains backend connection settings
type APIConfig struct {
	BaseURL   string `json:"baseUrl"`
	TimeoutMs int    `json:"timeoutMs"`
}

// CacheConfig contains local cache settings
type CacheConfig struct {
	Path string `json:"path"`
}

// UIConfig contains board presentation settings
type UIConfig struct {
	DefaultGroupBy string `json:"defaultGroupBy"`
	ToastTimeoutMs int    `json:"toastTimeoutMs"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8823",
			TimeoutMs: 10000,
		},
		Cache: CacheConfig{
			Path: filepath.Join(homeDir, ".taskflow", "cache.sqlite"),
		},
		UI: UIConfig{
			DefaultGroupBy: "status",
			ToastTimeoutMs: 4000,
		},
	}
}

// LoadConfig loads configuration from project path with priority:
// 1. .taskflow.json in project root
// 2. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	taskflowPath := filepath.Join(projectPath, ".taskflow.json")
	if data, err := os.ReadFile(taskflowPath); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse .taskflow.json: %w", err)
		}
		return MergeWithDefaults(&cfg), nil
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutMs == 0 {
		cfg.API.TimeoutMs = defaults.API.TimeoutMs
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = defaults.Cache.Path
	}

	if cfg.UI.DefaultGroupBy == "" {
		cfg.UI.DefaultGroupBy = defaults.UI.DefaultGroupBy
	}
	if cfg.UI.ToastTimeoutMs == 0 {
		cfg.UI.ToastTimeoutMs = defaults.UI.ToastTimeoutMs
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
