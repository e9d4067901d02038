package cachekey

import "errors"

// ErrHeaderNotFound is returned when the KEY line is missing from the first
// HeaderSize bytes. The file may be truncated, still being written, or not a
// cache file at all.
var ErrHeaderNotFound = errors.New("could not find headers at start of file")
