// Package cmd provides the command-line interface implementation for
// nginx-cache-find.
//
// It uses the Cobra library for command structure and Fang for styling.
// The package is organized into the following commands:
//   - root: Main command coordinator, persistent flags and config loading
//   - find: Search a cache directory for keys matching a pattern
//   - count: Count cache files and keyed entries
//   - seed: Generate a synthetic nginx cache tree
//   - version: Build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Settings are layered: built-in
// defaults, then the YAML config file, then flags set on the command line.
package cmd
