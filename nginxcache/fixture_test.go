package nginxcache

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dendrascience/nginx-cache-find/util"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cacheRoot = "/cache"

var fixtureKeys = []string{
	"https://example.com/path",
	"http://example.com/images/120/image123.jpg",
	"http://example.com/thumbs/120/image123.jpg",
	"http://example.com/styles/site.css",
}

// fixture holds a small nginx cache in memory. paths maps each key to the
// file it was stored in.
type fixture struct {
	fs        billy.Filesystem
	paths     map[string]string
	malformed string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{fs: memfs.New(), paths: make(map[string]string)}
	modified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, key := range fixtureKeys {
		path := util.CachePath(cacheRoot, key, []int{1, 2})
		require.NoError(t, util.WriteCacheFile(fx.fs, path, key, []byte("body"), modified))
		fx.paths[key] = path
	}

	fx.malformed = fx.fs.Join(cacheRoot, "0", "00", "0123456789abcdef0123456789abcdef")
	f, err := fx.fs.Create(fx.malformed)
	require.NoError(t, err)
	_, err = f.Write([]byte("not a cache file"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return fx
}

// probeFS wraps a filesystem to inject failures and to observe how the
// scanner uses it.
type probeFS struct {
	billy.Filesystem

	openErr    map[string]error
	readDirErr map[string]error
	lstatErr   map[string]error
	readErr    map[string]error
	onReadDir  func(path string)

	calls atomic.Int64

	mu      sync.Mutex
	held    int
	maxHeld int
}

func newProbe(inner billy.Filesystem) *probeFS {
	return &probeFS{
		Filesystem: inner,
		openErr:    map[string]error{},
		readDirErr: map[string]error{},
		lstatErr:   map[string]error{},
		readErr:    map[string]error{},
	}
}

func (p *probeFS) acquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held++
	if p.held > p.maxHeld {
		p.maxHeld = p.held
	}
}

func (p *probeFS) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held--
}

func (p *probeFS) holding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held
}

func (p *probeFS) peak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxHeld
}

func (p *probeFS) ReadDir(path string) ([]os.FileInfo, error) {
	p.calls.Add(1)
	if err, ok := p.readDirErr[path]; ok {
		return nil, err
	}
	if p.onReadDir != nil {
		p.onReadDir(path)
	}
	p.acquire()
	defer p.release()
	// widen the window in which overlapping listings would be observed
	time.Sleep(time.Millisecond)
	return p.Filesystem.ReadDir(path)
}

func (p *probeFS) Lstat(path string) (os.FileInfo, error) {
	p.calls.Add(1)
	if err, ok := p.lstatErr[path]; ok {
		return nil, err
	}
	return p.Filesystem.Lstat(path)
}

func (p *probeFS) Stat(path string) (os.FileInfo, error) {
	p.calls.Add(1)
	return p.Filesystem.Stat(path)
}

func (p *probeFS) Open(path string) (billy.File, error) {
	p.calls.Add(1)
	if err, ok := p.openErr[path]; ok {
		return nil, err
	}
	f, err := p.Filesystem.Open(path)
	if err != nil {
		return nil, err
	}
	p.acquire()
	return &probeFile{File: f, fs: p, readErr: p.readErr[path]}, nil
}

type probeFile struct {
	billy.File
	fs      *probeFS
	readErr error
	closed  bool
}

func (f *probeFile) Read(b []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.File.Read(b)
}

func (f *probeFile) Close() error {
	if !f.closed {
		f.closed = true
		f.fs.release()
	}
	return f.File.Close()
}

// collect drains a scan, failing the test if it does not finish in time.
func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var evs []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return evs
			}
			evs = append(evs, ev)
		case <-timeout:
			t.Fatalf("scan did not finish; %d events so far", len(evs))
			return nil
		}
	}
}

func countKind(evs []Event, kind EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func assertFinishedOnce(t *testing.T, evs []Event) {
	t.Helper()
	require.NotEmpty(t, evs)
	assert.Equal(t, 1, countKind(evs, EventFinish), "finish must be emitted exactly once")
	assert.Equal(t, EventFinish, evs[len(evs)-1].Kind, "finish must be the last event")
}
