package util

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/taigrr/colorhash"
)

// SeedOptions controls the synthetic cache produced by Seed.
type SeedOptions struct {
	Root      string
	Count     int      // cache files with a valid KEY line
	Malformed int      // files without a KEY line, as left by interrupted writes
	Levels    []int    // nginx levels, see ParseLevels
	Hosts     []string // hosts used to build keys
	Scheme    string   // defaults to https
	Modified  time.Time
}

// SeededFile is one file written by Seed. Key is empty for malformed files.
type SeededFile struct {
	Path string
	Key  string
}

// Seed writes a synthetic nginx cache below opts.Root. Keys look like
// <scheme>://<host>/assets/<uuid>.jpg; the host is picked from opts.Hosts
// by hashing the generated id, so a given id always maps to the same host.
func Seed(fsys billy.Filesystem, opts SeedOptions) ([]SeededFile, error) {
	if len(opts.Hosts) == 0 {
		opts.Hosts = []string{"example.com"}
	}
	if opts.Scheme == "" {
		opts.Scheme = "https"
	}
	if opts.Modified.IsZero() {
		opts.Modified = time.Now()
	}

	files := make([]SeededFile, 0, opts.Count+opts.Malformed)
	for range opts.Count {
		id := uuid.New().String()
		host := opts.Hosts[Bucket(id, len(opts.Hosts))]
		key := fmt.Sprintf("%s://%s/assets/%s.jpg", opts.Scheme, host, id)
		path := CachePath(opts.Root, key, opts.Levels)

		if err := WriteCacheFile(fsys, path, key, []byte(id), opts.Modified); err != nil {
			return files, fmt.Errorf("failed to write cache file %s: %w", path, err)
		}
		files = append(files, SeededFile{Path: path, Key: key})
	}

	for range opts.Malformed {
		id := uuid.New().String()
		path := CachePath(opts.Root, id, opts.Levels)
		if err := writeFile(fsys, path, []byte("partial write "+id)); err != nil {
			return files, fmt.Errorf("failed to write malformed file %s: %w", path, err)
		}
		files = append(files, SeededFile{Path: path})
	}

	return files, nil
}

// Bucket maps s onto [0, n) with a stable string hash.
func Bucket(s string, n int) int {
	if n <= 0 {
		return 0
	}
	b := colorhash.HashString(s) % n
	if b < 0 {
		b += n
	}
	return b
}
