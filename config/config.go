package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"testledger-cli/junit"
	"testledger-cli/logging"
)

// DefaultConfigFile is picked up from the working directory when no
// explicit config file is given
const DefaultConfigFile = "testledger.yml"

const (
	DefaultSourceDir = "target/surefire-reports"
	DefaultOutputDir = "target/enhanced-reports"
)

// Config represents the application configuration
type Config struct {
	SourceDir   string       `yaml:"source_dir"`
	OutputDir   string       `yaml:"output_dir"`
	FilePrefix  string       `yaml:"file_prefix"`
	FileSuffix  string       `yaml:"file_suffix"`
	SuiteFilter string       `yaml:"suite_filter"`
	LogLevel    string       `yaml:"log_level"`
	MetricsFile string       `yaml:"metrics_file"`
	Rules       *junit.Rules `yaml:"rules"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		SourceDir:   DefaultSourceDir,
		OutputDir:   DefaultOutputDir,
		FilePrefix:  junit.DefaultFilePrefix,
		FileSuffix:  junit.DefaultFileSuffix,
		SuiteFilter: junit.DefaultSuiteFilter,
		LogLevel:    "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment, in that order. An empty path falls back to
// DefaultConfigFile when it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	return load(".", path)
}

// load resolves the .env file, the default config file and any relative
// path against dir
func load(dir, path string) (Config, error) {
	cfg := Default()

	if err := loadDotEnv(filepath.Join(dir, DotEnvFile)); err != nil {
		return cfg, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		logging.Debug("Config", "Loaded config from %s", path)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file, defaults apply
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Aggregator returns the aggregation settings. Rules fall back to the
// built-in table when the file defines none.
func (c Config) Aggregator() junit.Config {
	cfg := junit.DefaultConfig()
	if c.FilePrefix != "" || c.FileSuffix != "" {
		cfg.FilePrefix = c.FilePrefix
		cfg.FileSuffix = c.FileSuffix
	}
	if c.SuiteFilter != "" {
		cfg.SuiteFilter = c.SuiteFilter
	}
	if c.Rules != nil {
		cfg.Rules = *c.Rules
	}
	return cfg
}

// Level returns the configured log level
func (c Config) Level() logging.LogLevel {
	return logging.ParseLevel(c.LogLevel)
}
