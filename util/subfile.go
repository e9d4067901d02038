package util

import (
	"errors"

	"github.com/dendrascience/nginx-cache-find/cachekey"
	"github.com/go-git/go-billy/v5"
)

// Counts summarises a cache tree.
type Counts struct {
	Dirs  int // directories below the root
	Files int // regular files
	Keyed int // regular files with a readable KEY line
}

// CountEntries walks path and counts directories, regular files and files
// whose header carries a cache key. Symbolic links are not followed.
// Files that vanish or cannot be read during the walk are counted as files
// without a key; a directory that cannot be listed aborts the count.
func CountEntries(fsys billy.Filesystem, path string) (Counts, error) {
	var c Counts
	info, err := fsys.Stat(path)
	if err != nil {
		return c, err
	}
	if !info.IsDir() {
		return c, ErrExpectedDirectory
	}
	err = countDir(fsys, path, &c)
	return c, err
}

func countDir(fsys billy.Filesystem, path string, c *Counts) error {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		child := fsys.Join(path, e.Name())
		info, err := fsys.Lstat(child)
		if errors.Is(err, billy.ErrNotSupported) {
			info, err = e, nil
		}
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			c.Dirs++
			if err := countDir(fsys, child, c); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			c.Files++
			if hasKey(fsys, child) {
				c.Keyed++
			}
		}
	}
	return nil
}

func hasKey(fsys billy.Filesystem, path string) bool {
	f, err := fsys.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = cachekey.ReadKey(f)
	return err == nil
}
