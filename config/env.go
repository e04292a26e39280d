package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is loaded, when present, before environment overrides apply.
// Variables already set in the process environment win.
const DotEnvFile = ".env"

// Environment variables overriding config file values
const (
	EnvSourceDir   = "TESTLEDGER_SOURCE_DIR"
	EnvOutputDir   = "TESTLEDGER_OUTPUT_DIR"
	EnvSuiteFilter = "TESTLEDGER_SUITE_FILTER"
	EnvLogLevel    = "TESTLEDGER_LOG_LEVEL"
	EnvMetricsFile = "TESTLEDGER_METRICS_FILE"
)

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		EnvSourceDir:   &cfg.SourceDir,
		EnvOutputDir:   &cfg.OutputDir,
		EnvSuiteFilter: &cfg.SuiteFilter,
		EnvLogLevel:    &cfg.LogLevel,
		EnvMetricsFile: &cfg.MetricsFile,
	}
	for name, target := range overrides {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}
}
