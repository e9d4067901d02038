// Package version provides version information and build metadata for
// nginx-cache-find.
//
// Values come from compile-time variables set with -ldflags, falling back to
// the module version and VCS settings recorded by debug.ReadBuildInfo:
//
//	-ldflags "-X github.com/dendrascience/nginx-cache-find/version.Version=v1.0.0 \
//	          -X github.com/dendrascience/nginx-cache-find/version.Commit=abc123 \
//	          -X github.com/dendrascience/nginx-cache-find/version.Date=2026-01-01T00:00:00Z"
package version
