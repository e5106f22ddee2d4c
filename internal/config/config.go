// Package config loads the CLI configuration from an optional YAML
// file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the vault's JSON files and the flag database.
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Backup   struct {
		// Dir is where `hearth backup` writes snapshots by default.
		Dir string `yaml:"dir"`
	} `yaml:"backup"`
}

// Default returns the configuration used when no file and no
// environment overrides are present.
func Default() Config {
	var cfg Config
	cfg.DataDir = defaultDataDir()
	cfg.LogLevel = "info"
	cfg.Backup.Dir = filepath.Join(cfg.DataDir, "backups")
	return cfg
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".hearth"
	}
	return filepath.Join(base, "hearth")
}

// Load reads the YAML file at path when it exists, then applies
// HEARTH_DATA_DIR and HEARTH_LOG_LEVEL overrides. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("decode config: %w", err)
			}
		}
	}

	if v := os.Getenv("HEARTH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("HEARTH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Backup.Dir == "" {
		cfg.Backup.Dir = filepath.Join(cfg.DataDir, "backups")
	}
	return cfg, nil
}
