package nginxcache

import (
	"context"
	"errors"
	"runtime"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sync/semaphore"
)

// Cache is an nginx proxy cache directory that can be searched by key.
type Cache struct {
	dir         string
	fs          billy.Filesystem
	concurrency int
}

// Option configures a Cache.
type Option func(*Cache)

// WithFilesystem replaces the host filesystem. dir passed to New is then
// resolved inside fs.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *Cache) {
		c.fs = fs
	}
}

// WithConcurrency bounds how many directory listings and cache files may be
// open at once during a scan. Zero or less means runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(c *Cache) {
		c.concurrency = n
	}
}

// New returns a Cache rooted at dir. The directory is not touched until Find.
func New(dir string, opts ...Option) (*Cache, error) {
	if dir == "" {
		return nil, ErrDirectoryRequired
	}
	c := &Cache{
		dir: dir,
		fs:  osfs.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency <= 0 {
		c.concurrency = runtime.NumCPU()
	}
	return c, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Find starts a scan for cache files whose key satisfies pattern and returns
// the stream of events. EventFinish is always the final event, after which the
// channel is closed.
//
// The caller must drain the channel or cancel ctx. After cancellation no new
// work is dispatched and events that cannot be delivered are dropped.
func (c *Cache) Find(ctx context.Context, pattern Matcher) <-chan Event {
	events := make(chan Event, c.concurrency)

	go func() {
		defer close(events)

		s := &scan{
			ctx:      ctx,
			fs:       c.fs,
			root:     c.dir,
			pattern:  pattern,
			sem:      semaphore.NewWeighted(int64(c.concurrency)),
			branches: c.concurrency,
			work:     newTracker(),
			events:   events,
		}

		if !validMatcher(pattern) {
			s.emit(Event{Kind: EventError, Err: ErrInvalidPattern})
			s.finish()
			return
		}

		s.work.start()
		s.visitDir(c.dir)
		<-s.work.Done()
		s.finish()
	}()

	return events
}

// Walk runs Find and feeds the events to h until the scan finishes. It returns
// the fatal errors reported by the scan joined together, or ctx.Err() if the
// scan was cancelled.
func (c *Cache) Walk(ctx context.Context, pattern Matcher, h Handler) error {
	var fatal []error
	for ev := range c.Find(ctx, pattern) {
		h.dispatch(ev)
		if ev.Kind == EventError {
			fatal = append(fatal, ev.Err)
		}
	}
	if len(fatal) > 0 {
		return errors.Join(fatal...)
	}
	return ctx.Err()
}
