// Package util provides helpers around the on-disk layout of an nginx proxy
// cache.
//
// nginx names each cache file after the MD5 hash of its key and spreads the
// files over a directory hierarchy controlled by the proxy_cache_path
// "levels" parameter. With levels=1:2 the key whose hash is
// b7f54b2df7773722d382f4809d65029c lands in
//
//	<root>/c/29/b7f54b2df7773722d382f4809d65029c
//
// Key Components:
//
// Layout:
//   - ParseLevels and CachePath reproduce nginx's hashed directory layout
//
// Cache Files:
//   - WriteCacheFile writes a file with a version 5 binary header, the KEY
//     line and a minimal HTTP response, which is what nginx leaves on disk
//   - Seed fills a directory with synthetic cache files for demos and tests
//
// Statistics:
//   - CountEntries walks a cache tree and counts files and readable keys
//   - Summary records the outcome of a find run as JSON
//
// Cache files are written through a billy.Filesystem so the same code serves
// the seed command on disk and tests in memory.
package util
