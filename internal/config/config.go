// Package config loads persistent CLI defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds persistent defaults loaded from config files.
type Config struct {
	Dump   DumpConfig   `yaml:"dump"`
	Export ExportConfig `yaml:"export"`
	Upload UploadConfig `yaml:"upload"`
}

// DumpConfig holds image decoding defaults.
type DumpConfig struct {
	ByteOrder string `yaml:"byte_order"` // little or big
	TickHz    int    `yaml:"tick_hz"`    // 0 = show raw ticks
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format string `yaml:"format"`
}

// UploadConfig holds upload defaults.
type UploadConfig struct {
	To string `yaml:"to"` // s3://bucket/prefix or gs://bucket/prefix
}

// Load reads config from ~/.ramlog/config.yaml then CWD .ramlog.yaml.
// CWD config values override home config. Missing files are not errors.
// Environment variables (RAMLOG_*) override config file values.
func Load() *Config {
	cfg := &Config{}

	// home config
	if home, err := os.UserHomeDir(); err == nil {
		_ = loadFile(filepath.Join(home, ".ramlog", "config.yaml"), cfg)
	}

	// CWD config overrides
	_ = loadFile(".ramlog.yaml", cfg)

	// env overrides
	applyEnv(cfg)

	return cfg
}

// LoadFrom reads config from a specific path. Used for testing.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RAMLOG_BYTE_ORDER"); v != "" {
		cfg.Dump.ByteOrder = v
	}
	if v := os.Getenv("RAMLOG_TICK_HZ"); v != "" {
		if hz, err := strconv.Atoi(v); err == nil {
			cfg.Dump.TickHz = hz
		}
	}
	if v := os.Getenv("RAMLOG_EXPORT_FORMAT"); v != "" {
		cfg.Export.Format = v
	}
	if v := os.Getenv("RAMLOG_UPLOAD_TO"); v != "" {
		cfg.Upload.To = v
	}
}
