// Package config loads the runner configuration for the helbredstillæg
// calculator: where the per-case data drops live, how to log, and an
// optional fixed evaluation time for reproducing earlier runs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete runner configuration.
type Config struct {
	// DataRoot is the directory holding one subdirectory per case id.
	DataRoot string `yaml:"data_root"`

	// Now optionally pins the evaluation time (YYYY-MM-DD). Empty means
	// wall-clock time.
	Now string `yaml:"now,omitempty"`

	Logger LoggerConfig `yaml:"logger"`
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json or console
	OutputPath string `yaml:"output_path"` // stdout, stderr, or file path
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataRoot: "data",
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// LoadFromFile loads and validates a YAML configuration file.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the runner cannot work with.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data_root is required")
	}
	if c.Now != "" {
		if _, err := time.Parse("2006-01-02", c.Now); err != nil {
			return fmt.Errorf("now must be a YYYY-MM-DD date: %w", err)
		}
	}
	switch c.Logger.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logger format must be 'json' or 'console'")
	}
	return nil
}

// EvaluationTime resolves the configured evaluation time, falling back to
// the given wall-clock time.
func (c *Config) EvaluationTime(fallback time.Time) time.Time {
	if c.Now == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", c.Now)
	if err != nil {
		return fallback
	}
	return t
}
