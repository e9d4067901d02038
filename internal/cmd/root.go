package cmd

import (
	"github.com/dendrascience/nginx-cache-find/internal/config"
	"github.com/dendrascience/nginx-cache-find/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the
// nginx-cache-find CLI. It sets up all subcommands, command groups, and the
// persistent flags shared by them.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nginx-cache-find",
		Short: "nginx-cache-find - Search an nginx proxy cache by cache key",
		Long: `nginx-cache-find searches an nginx proxy cache directory for the files
whose cache key matches a pattern.

nginx stores every cached response in a file named after the MD5 of its key,
so the key itself is only recoverable from the KEY line in the file header.
nginx-cache-find walks the cache tree, reads each header and reports the
files whose key matches.

Use subcommands to perform different operations:
  - find: List cache files whose key matches a pattern
  - count: Count cache files and how many carry a readable key
  - seed: Write a synthetic cache tree for testing`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	groupSearch := "search"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSearch,
		Title: "Cache Search",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	findCmd := NewFindCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	findCmd.GroupID = groupSearch
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
