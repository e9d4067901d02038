package cachekey

import (
	"bytes"
	"errors"
	"io"
)

// HeaderSize is the number of leading bytes inspected in each cache file.
const HeaderSize = 1024

var marker = []byte("\nKEY: ")

// KeyFromHeader seeks "\nKEY: <key>\n" in the first n bytes of buf and
// returns <key>. Only the first marker counts. The key may be empty.
// n is clamped to len(buf).
func KeyFromHeader(buf []byte, n int) (string, bool) {
	if n > len(buf) {
		n = len(buf)
	}
	// marker plus the terminating newline
	if n < len(marker)+1 {
		return "", false
	}
	window := buf[:n]

	start := bytes.Index(window, marker)
	if start < 0 {
		return "", false
	}
	rest := window[start+len(marker):]
	end := bytes.IndexByte(rest, '\n')
	if end < 0 {
		return "", false
	}
	return string(rest[:end]), true
}

// ReadKey reads up to HeaderSize bytes from r and extracts the cache key.
// A short read is not an error; a missing KEY line is ErrHeaderNotFound.
func ReadKey(r io.Reader) (string, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	key, ok := KeyFromHeader(buf, n)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return key, nil
}
