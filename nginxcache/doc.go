// Package nginxcache finds nginx proxy cache files by the key they were
// stored under.
//
// A Cache is bound to one cache directory. Find walks the whole tree below it,
// reads the header of every regular file, recovers the cache key with the
// cachekey package and reports files whose key satisfies a Matcher. Results
// are streamed as Events:
//
//   - EventMatch: a file whose key matched
//   - EventWarn: a per-node failure (unreadable directory, vanished file,
//     missing KEY line); the walk continues
//   - EventError: a fatal input problem (nil pattern, permission denied on the
//     cache root)
//   - EventFinish: delivered exactly once and last to a consumer that keeps
//     reading, including after ctx is cancelled
//
// The cache manager may evict files while a scan is running, so failures on
// individual nodes are expected and never abort sibling branches. Symbolic
// links and other non-regular entries are skipped without following them.
//
// Directory branches are walked in parallel, at most the configured
// concurrency per directory. Files inside one directory are handled one at a
// time and a semaphore bounds how many directory listings and cache files are
// open at once across the whole scan. Completion is detected by
// an outstanding-work counter that is incremented before each unit of work is
// dispatched and decremented once it has fully resolved.
//
// The filesystem is reached through a billy.Filesystem so the walk can be run
// against an in-memory tree in tests. Cache files are only ever opened for
// reading.
package nginxcache
