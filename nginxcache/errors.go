package nginxcache

import "errors"

// Sentinel errors for package nginxcache.
var (
	// ErrDirectoryRequired is returned by New when no cache directory is given.
	ErrDirectoryRequired = errors.New("directory required")

	// ErrInvalidPattern is emitted when Find is called without a usable Matcher.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrRootPermission wraps the listing error of a cache root that cannot be read.
	ErrRootPermission = errors.New("permission denied to read files in root of cache directory")
)
