package nginxcache

import "fmt"

// EventKind identifies the type of an Event.
type EventKind int

const (
	EventMatch EventKind = iota
	EventWarn
	EventError
	EventFinish
)

func (k EventKind) String() string {
	switch k {
	case EventMatch:
		return "match"
	case EventWarn:
		return "warn"
	case EventError:
		return "error"
	case EventFinish:
		return "finish"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one signal of a scan. Path and Key are set for EventMatch,
// Err for EventWarn and EventError.
type Event struct {
	Kind EventKind
	Path string
	Key  string
	Err  error
}

// Entry is a cache file together with the key recovered from its header.
type Entry struct {
	Path string
	Key  string
}

// Handler receives the events of a Walk. Nil callbacks are ignored.
type Handler struct {
	OnMatch func(Entry)
	OnWarn  func(error)
	OnError func(error)
}

func (h Handler) dispatch(ev Event) {
	switch ev.Kind {
	case EventMatch:
		if h.OnMatch != nil {
			h.OnMatch(Entry{Path: ev.Path, Key: ev.Key})
		}
	case EventWarn:
		if h.OnWarn != nil {
			h.OnWarn(ev.Err)
		}
	case EventError:
		if h.OnError != nil {
			h.OnError(ev.Err)
		}
	}
}
