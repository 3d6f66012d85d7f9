// Package common provides shared utilities for cashmatch
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for cashmatch
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Optimizer   OptimizerConfig `toml:"optimizer"`
	Export      ExportConfig    `toml:"export"`
	Limits      LimitsConfig    `toml:"limits"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// GetReadTimeout parses and returns the read timeout duration
func (c *ServerConfig) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout parses and returns the write timeout duration
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// OptimizerConfig holds the numerical settings of the cash-matching engine.
type OptimizerConfig struct {
	DefaultReinvestmentRate float64 `toml:"default_reinvestment_rate"` // annual percent, 0-20
	HoldingThreshold        float64 `toml:"holding_threshold"`         // face values at or below are noise
	SurplusTolerance        float64 `toml:"surplus_tolerance"`         // allowed negative surplus / solver disagreement
	SolverTolerance         float64 `toml:"solver_tolerance"`          // simplex pivot tolerance
	MaxBonds                int     `toml:"max_bonds"`                 // 0 = unlimited
	MaxPeriods              int     `toml:"max_periods"`               // 0 = unlimited
}

// ExportConfig holds presentation settings for CSV, chart and markdown exports.
type ExportConfig struct {
	DecimalPlaces int `toml:"decimal_places"`
	ChartWidth    int `toml:"chart_width"`
	ChartHeight   int `toml:"chart_height"`
}

// LimitsConfig bounds how many optimizations the HTTP server accepts.
type LimitsConfig struct {
	OptimizeRateLimit int `toml:"optimize_rate_limit"` // requests per second, 0 disables
	OptimizeBurst     int `toml:"optimize_burst"`
	MaxScenarios      int `toml:"max_scenarios"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  "30s",
			WriteTimeout: "120s",
		},
		Optimizer: OptimizerConfig{
			DefaultReinvestmentRate: 4.0,
			HoldingThreshold:        1e-6,
			SurplusTolerance:        1e-6,
			SolverTolerance:         1e-10,
		},
		Export: ExportConfig{
			DecimalPlaces: 6,
			ChartWidth:    900,
			ChartHeight:   400,
		},
		Limits: LimitsConfig{
			OptimizeRateLimit: 10,
			OptimizeBurst:     10,
			MaxScenarios:      16,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Outputs:    []string{"console"},
			FilePath:   "./logs/cashmatch.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CASHMATCH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CASHMATCH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CASHMATCH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CASHMATCH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("CASHMATCH_REINVESTMENT_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			config.Optimizer.DefaultReinvestmentRate = r
		}
	}

	if v := os.Getenv("CASHMATCH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Limits.OptimizeRateLimit = n
		}
	}
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if r := c.Optimizer.DefaultReinvestmentRate; r < 0 || r > 20 {
		return fmt.Errorf("optimizer.default_reinvestment_rate %.4f outside [0, 20]", r)
	}
	if c.Optimizer.HoldingThreshold < 0 {
		return fmt.Errorf("optimizer.holding_threshold must not be negative")
	}
	if c.Optimizer.SurplusTolerance < 0 {
		return fmt.Errorf("optimizer.surplus_tolerance must not be negative")
	}
	if c.Export.DecimalPlaces < 0 || c.Export.DecimalPlaces > 12 {
		return fmt.Errorf("export.decimal_places %d outside [0, 12]", c.Export.DecimalPlaces)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
