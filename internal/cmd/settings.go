package cmd

import (
	"fmt"

	"github.com/dendrascience/nginx-cache-find/internal/config"
	"github.com/dendrascience/nginx-cache-find/internal/logger"
	"github.com/spf13/cobra"
)

// loadConfig reads the config file named by --config and applies any flags
// the user set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	var (
		cacheDir, logLevel, levels *string
		concurrency                *int
		noColor                    *bool
	)
	// seed writes with --output where find and count read with --dir.
	for _, name := range []string{"dir", "output"} {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			cacheDir = &v
		}
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevel = &v
	}
	if flags.Changed("levels") {
		v, _ := flags.GetString("levels")
		levels = &v
	}
	if flags.Changed("concurrency") {
		v, _ := flags.GetInt("concurrency")
		concurrency = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		noColor = &v
	}
	cfg.MergeWithFlags(cacheDir, concurrency, logLevel, noColor, levels)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// newLogger returns the stderr logger for cmd configured from cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.ConsoleLogger {
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if !cfg.Color {
		log.SetColor(false)
	}
	return log
}
