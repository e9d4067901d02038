package util

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
)

// CacheFileVersion is the header version written by current nginx releases.
const CacheFileVersion = 5

// fileHeader mirrors ngx_http_file_cache_header_t on a 64-bit host.
type fileHeader struct {
	Version      uint64
	ValidSec     int64
	UpdatingSec  int64
	ErrorSec     int64
	LastModified int64
	Date         int64
	CRC32        uint32
	ValidMsec    uint16
	HeaderStart  uint16
	BodyStart    uint16
	EtagLen      uint8
	Etag         [128]byte
	VaryLen      uint8
	Vary         [128]byte
	Variant      [16]byte
	_            [4]byte
}

// EncodeCacheFile returns the bytes nginx would store for a 200 response to
// key with the given body.
func EncodeCacheFile(key string, body []byte, modified time.Time) ([]byte, error) {
	if len(key) > 0xffff/2 {
		return nil, fmt.Errorf("key too long: %d bytes", len(key))
	}

	var headers bytes.Buffer
	fmt.Fprintf(&headers, "HTTP/1.1 200 OK\r\n")
	fmt.Fprintf(&headers, "Date: %s\r\n", modified.UTC().Format(time.RFC1123))
	fmt.Fprintf(&headers, "Content-Length: %d\r\n", len(body))
	fmt.Fprintf(&headers, "Last-Modified: %s\r\n\r\n", modified.UTC().Format(time.RFC1123))

	keyLine := "\nKEY: " + key + "\n"
	headerStart := binary.Size(fileHeader{}) + len(keyLine)

	h := fileHeader{
		Version:      CacheFileVersion,
		ValidSec:     modified.Add(time.Hour).Unix(),
		LastModified: modified.Unix(),
		Date:         modified.Unix(),
		CRC32:        crc32.ChecksumIEEE([]byte(key)),
		HeaderStart:  uint16(headerStart),
		BodyStart:    uint16(headerStart + headers.Len()),
	}

	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	out.WriteString(keyLine)
	out.Write(headers.Bytes())
	out.Write(body)
	return out.Bytes(), nil
}

// WriteCacheFile writes a cache file for key at path, creating parent
// directories as needed.
func WriteCacheFile(fsys billy.Filesystem, path, key string, body []byte, modified time.Time) error {
	data, err := EncodeCacheFile(key, body, modified)
	if err != nil {
		return err
	}
	return writeFile(fsys, path, data)
}

func writeFile(fsys billy.Filesystem, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
