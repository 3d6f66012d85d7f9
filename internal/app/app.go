// Package app wires configuration, logging and services into one App shared
// by cmd/cashmatch-server and cmd/cashmatch.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/interfaces"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
	"github.com/bobmcallan/cashmatch/internal/services/report"
)

// App holds all initialized services.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	CashMatchService interfaces.CashMatchService
	ReportService    interfaces.ReportService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the provided path, CASHMATCH_CONFIG, then the
// binary dir, then config/cashmatch.toml for development.
func resolveConfigPath(configPath, binDir string) string {
	if configPath == "" {
		configPath = os.Getenv("CASHMATCH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cashmatch.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cashmatch.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes all services.
// configPath may be empty, in which case the default resolution logic is used.
// A missing config file is not an error; defaults apply.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	config, err := common.LoadConfig(resolveConfigPath(configPath, binDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	return newApp(config, logger, startupStart), nil
}

// NewAppWithConfig builds an App from an already-loaded config. Used by tests
// and by callers that manage their own logger.
func NewAppWithConfig(config *common.Config, logger *common.Logger) *App {
	return newApp(config, logger, time.Now())
}

func newApp(config *common.Config, logger *common.Logger, startupStart time.Time) *App {
	cashMatchService := cashmatch.NewService(cashmatch.OptionsFromConfig(config.Optimizer), logger)
	reportService := report.NewService(config.Export, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		CashMatchService: cashMatchService,
		ReportService:    reportService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a
}
