package nginxcache

import (
	"sync"
	"sync/atomic"
)

// tracker counts units of work that have been dispatched but not yet
// resolved. The transition to zero closes done exactly once.
type tracker struct {
	outstanding atomic.Int64
	once        sync.Once
	done        chan struct{}
}

func newTracker() *tracker {
	return &tracker{done: make(chan struct{})}
}

// start must be called before the unit of work it accounts for is dispatched.
func (t *tracker) start() {
	t.outstanding.Add(1)
}

// finish marks one unit resolved. Calling it more often than start panics.
func (t *tracker) finish() {
	switch n := t.outstanding.Add(-1); {
	case n < 0:
		t.outstanding.Add(1)
		panic("nginxcache: tracker finished more units than were started")
	case n == 0:
		t.once.Do(func() { close(t.done) })
	}
}

// Outstanding returns the number of unresolved units.
func (t *tracker) Outstanding() int64 {
	return t.outstanding.Load()
}

// Done is closed when the count first drops back to zero.
func (t *tracker) Done() <-chan struct{} {
	return t.done
}
