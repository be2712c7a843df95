package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Digital-Shane/adr/internal/tui/livetable"
)

// Config holds the user settings stored in ~/.adr/config.json
type Config struct {
	Dir               string `json:"dir"`
	PageSize          int    `json:"page_size"`
	Paging            string `json:"paging"`
	MaxCellWidth      int    `json:"max_cell_width"`
	EnableLogging     bool   `json:"enable_logging"`
	LogRetentionDays  int    `json:"log_retention_days"`
	FieldCacheSeconds int    `json:"field_cache_seconds"`
	LoadWorkers       int    `json:"load_workers"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dir:               "doc/adr",
		PageSize:          livetable.DefaultPageSize,
		Paging:            livetable.PagingStrict.String(),
		MaxCellWidth:      60,
		EnableLogging:     true,
		LogRetentionDays:  30,
		FieldCacheSeconds: 30,
		LoadWorkers:       8,
	}
}

// BaseDir returns the directory holding the config file and the journal
func BaseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".adr"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// Load reads the configuration from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in any missing fields with defaults
	defaults := DefaultConfig()
	if cfg.Dir == "" {
		cfg.Dir = defaults.Dir
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.Paging == "" {
		cfg.Paging = defaults.Paging
	}
	if cfg.LogRetentionDays == 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}
	if cfg.LoadWorkers <= 0 {
		cfg.LoadWorkers = defaults.LoadWorkers
	}

	return &cfg, nil
}

// Validate reports settings the table cannot run with
func (cfg *Config) Validate() error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxCellWidth < 0 {
		return fmt.Errorf("max_cell_width must not be negative, got %d", cfg.MaxCellWidth)
	}
	if cfg.Paging != livetable.PagingStrict.String() && cfg.Paging != livetable.PagingLegacy.String() {
		return fmt.Errorf("paging must be %q or %q, got %q", livetable.PagingStrict, livetable.PagingLegacy, cfg.Paging)
	}
	return nil
}

// PagingMode returns the configured paging arithmetic
func (cfg *Config) PagingMode() livetable.PagingMode {
	return livetable.ParsePagingMode(cfg.Paging)
}

// FieldCacheTTL returns how long rendered fields are memoized
func (cfg *Config) FieldCacheTTL() time.Duration {
	if cfg.FieldCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.FieldCacheSeconds) * time.Second
}

// Save writes the configuration to disk
func (cfg *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
