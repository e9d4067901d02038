package nginxcache

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar"
)

// Matcher decides whether a cache key is wanted. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(key string) bool
}

// Regexp compiles expr into a Matcher.
func Regexp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

// GlobMatcher matches keys against a doublestar glob with '/' as the
// separator, so "https://example.com/**/*.jpg" selects every JPEG under
// that host.
type GlobMatcher struct {
	pattern string
}

// Glob returns a GlobMatcher for pattern. Malformed patterns are rejected
// when they can be detected up front.
func Glob(pattern string) (*GlobMatcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty glob", ErrInvalidPattern)
	}
	if _, err := doublestar.Match(pattern, pattern); errors.Is(err, doublestar.ErrBadPattern) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return &GlobMatcher{pattern: pattern}, nil
}

func (g *GlobMatcher) MatchString(key string) bool {
	ok, err := doublestar.Match(g.pattern, key)
	return err == nil && ok
}

func (g *GlobMatcher) String() string {
	return g.pattern
}

// validMatcher reports whether m can be called. Typed nil pointers are
// rejected along with a nil interface.
func validMatcher(m Matcher) bool {
	switch v := m.(type) {
	case nil:
		return false
	case *regexp.Regexp:
		return v != nil
	case *GlobMatcher:
		return v != nil
	default:
		return true
	}
}
