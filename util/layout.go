package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultLevels is the levels value most nginx configurations use.
const DefaultLevels = "1:2"

// ParseLevels parses an nginx levels value such as "1:2" or "2:2:2".
// nginx allows up to three levels, each one or two characters wide. An empty
// string means a flat cache.
func ParseLevels(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w %q: at most 3 levels", ErrInvalidLevels, value)
	}
	levels := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 2 {
			return nil, fmt.Errorf("%w %q: level width must be 1 or 2", ErrInvalidLevels, value)
		}
		levels = append(levels, n)
	}
	return levels, nil
}

// KeyHash returns the hex MD5 of key, the file name nginx uses.
func KeyHash(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// CachePath returns where nginx stores key below root. Directory names are
// taken from the end of the hash, one level at a time.
func CachePath(root, key string, levels []int) string {
	hash := KeyHash(key)
	elems := make([]string, 0, len(levels)+2)
	elems = append(elems, root)
	end := len(hash)
	for _, width := range levels {
		elems = append(elems, hash[end-width:end])
		end -= width
	}
	elems = append(elems, hash)
	return filepath.Join(elems...)
}
