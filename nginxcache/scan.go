package nginxcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dendrascience/nginx-cache-find/cachekey"
	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// scan is the state of a single Find call.
type scan struct {
	ctx     context.Context
	fs      billy.Filesystem
	root    string
	pattern Matcher

	// sem bounds open directory listings and cache files.
	sem *semaphore.Weighted
	// branches bounds the subdirectories of one directory walked at once.
	branches int
	work     *tracker
	events   chan<- Event
}

func (s *scan) emit(ev Event) {
	if s.ctx.Err() != nil {
		return
	}
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// finishGrace is how long EventFinish waits for a reader once ctx is done.
const finishGrace = time.Second

// finish delivers EventFinish. While ctx is live it blocks like any other
// event. After cancellation it waits at most finishGrace for the consumer to
// make room, so an abandoned channel cannot strand the goroutine.
func (s *scan) finish() {
	ev := Event{Kind: EventFinish}
	if s.ctx.Err() == nil {
		select {
		case s.events <- ev:
			return
		case <-s.ctx.Done():
		}
	}
	select {
	case s.events <- ev:
		return
	default:
	}
	t := time.NewTimer(finishGrace)
	defer t.Stop()
	select {
	case s.events <- ev:
	case <-t.C:
	}
}

func (s *scan) warn(err error) {
	s.emit(Event{Kind: EventWarn, Err: err})
}

// visitDir resolves one directory unit. The caller has already counted it.
// Subdirectories become parallel branches, at most s.branches at a time;
// files are read in turn. The unit
// is finished only after every branch it spawned has finished.
func (s *scan) visitDir(dir string) {
	defer s.work.finish()

	names, err := s.list(dir)
	if err != nil {
		if dir == s.root && errors.Is(err, fs.ErrPermission) {
			s.emit(Event{Kind: EventError, Err: fmt.Errorf("%w %s: %w", ErrRootPermission, dir, err)})
			return
		}
		s.warn(err)
		return
	}

	var branches errgroup.Group
	if s.branches > 0 {
		branches.SetLimit(s.branches)
	}
	for _, name := range names {
		if s.ctx.Err() != nil {
			break
		}
		child := s.fs.Join(dir, name)
		info, err := s.fs.Lstat(child)
		if err != nil {
			s.warn(err)
			continue
		}
		switch {
		case info.IsDir():
			s.work.start()
			branches.Go(func() error {
				s.visitDir(child)
				return nil
			})
		case info.Mode().IsRegular():
			s.work.start()
			s.visitFile(child)
		}
	}
	branches.Wait()
}

func (s *scan) list(dir string) ([]string, error) {
	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// visitFile resolves one file unit. The handle is closed before the unit is
// marked finished.
func (s *scan) visitFile(path string) {
	defer s.work.finish()

	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		return
	}
	defer s.sem.Release(1)

	f, err := s.fs.Open(path)
	if err != nil {
		// most likely evicted by the cache manager since the listing
		s.warn(err)
		return
	}
	defer f.Close()

	key, err := cachekey.ReadKey(f)
	switch {
	case errors.Is(err, cachekey.ErrHeaderNotFound):
		s.warn(fmt.Errorf("%w %s", err, path))
	case err != nil:
		s.warn(fmt.Errorf("read %s: %w", path, err))
	case s.pattern.MatchString(key):
		s.emit(Event{Kind: EventMatch, Path: path, Key: key})
	}
}
