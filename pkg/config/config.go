// Package config loads runtime settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines runtime settings for the gridbot CLI.
type Config struct {
	LevelsPath    string `yaml:"levelsPath"`
	MaxOperations int    `yaml:"maxOperations"`
	LogLevel      string `yaml:"logLevel"`
	LogFormat     string `yaml:"logFormat"`
}

// Load reads configuration from a YAML file, then applies GRIDBOT_*
// environment overrides. An empty path skips the file and yields defaults
// plus overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LevelsPath:    "./levels",
		MaxOperations: 1000,
		LogLevel:      "info",
		LogFormat:     "text",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if levelsPath := os.Getenv("GRIDBOT_LEVELS_PATH"); levelsPath != "" {
		cfg.LevelsPath = levelsPath
	}
	if maxOps := os.Getenv("GRIDBOT_MAX_OPERATIONS"); maxOps != "" {
		n, err := strconv.Atoi(maxOps)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid GRIDBOT_MAX_OPERATIONS: %q", maxOps)
		}
		cfg.MaxOperations = n
	}
	if logLevel := os.Getenv("GRIDBOT_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat := os.Getenv("GRIDBOT_LOG_FORMAT"); logFormat != "" {
		cfg.LogFormat = logFormat
	}

	return cfg, nil
}

// DefaultConfigPath returns the default location for the CLI config file.
func DefaultConfigPath() string {
	if path := os.Getenv("GRIDBOT_CONFIG"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gridbot", "config.yaml")
}
