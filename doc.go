// Package main provides the nginx-cache-find command-line interface.
//
// nginx-cache-find searches an nginx proxy cache directory for cache files
// by key. nginx names cache files after the MD5 of their key, so the key can
// only be recovered from the KEY line near the start of each file; this tool
// walks the tree, reads those headers and reports the files whose key matches
// a regular expression or glob.
//
// The binary supports the following subcommands:
//   - find: List cache files whose key matches a pattern
//   - count: Count cache files and keyed entries
//   - seed: Generate a synthetic nginx cache tree for testing
//   - version: Show build information
package main
