// Package config loads the nginx-cache-find configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/nginx-cache-find/util"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is not
// given.
var DefaultPath = filepath.Join(".nginx-cache-find", "config.yaml")

// Config represents nginx-cache-find configuration options
type Config struct {
	// CacheDir is the nginx proxy_cache_path to scan
	CacheDir string `yaml:"cache_dir"`

	// Concurrency bounds open directory listings and cache files (0 = number of CPUs)
	Concurrency int `yaml:"concurrency"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color allows coloured output when writing to a terminal
	Color bool `yaml:"color"`

	// Levels is the nginx levels value used by seed
	Levels string `yaml:"levels"`
}

// DefaultConfig returns a Config with the default values
func DefaultConfig() *Config {
	return &Config{
		CacheDir:    "",
		Concurrency: 0,
		LogLevel:    "info",
		Color:       true,
		Levels:      util.DefaultLevels,
	}
}

// LoadConfig loads configuration from path, falling back to defaults for
// anything the file leaves out. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from zero values.
	type yamlConfig struct {
		CacheDir    *string `yaml:"cache_dir"`
		Concurrency *int    `yaml:"concurrency"`
		LogLevel    *string `yaml:"log_level"`
		Color       *bool   `yaml:"color"`
		Levels      *string `yaml:"levels"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.CacheDir != nil {
		cfg.CacheDir = *yamlCfg.CacheDir
	}
	if yamlCfg.Concurrency != nil {
		cfg.Concurrency = *yamlCfg.Concurrency
	}
	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.Color != nil {
		cfg.Color = *yamlCfg.Color
	}
	if yamlCfg.Levels != nil {
		cfg.Levels = *yamlCfg.Levels
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if _, err := util.ParseLevels(c.Levels); err != nil {
		return err
	}
	return nil
}

// MergeWithFlags applies CLI flag values on top of the configuration.
// Nil values leave the configured value in place.
func (c *Config) MergeWithFlags(cacheDir *string, concurrency *int, logLevel *string, noColor *bool, levels *string) {
	if cacheDir != nil {
		c.CacheDir = *cacheDir
	}
	if concurrency != nil {
		c.Concurrency = *concurrency
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if noColor != nil && *noColor {
		c.Color = false
	}
	if levels != nil {
		c.Levels = *levels
	}
}
