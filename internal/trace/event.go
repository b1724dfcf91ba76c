package trace

import "time"

// Kind is what an event marks: the start or end of a span, or an instant.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindMark
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	default:
		return "unknown"
	}
}

// Scope says which unit of work an event belongs to. Coarser scopes have
// smaller values, so levels can filter with a single comparison.
type Scope uint8

const (
	ScopeCommand    Scope = iota + 1 // one CLI invocation or directory walk
	ScopeStage                       // tokenize, parse
	ScopeFile                        // one source file inside a directory walk
	ScopeProduction                  // grammar productions, cache lookups
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeStage:
		return "stage"
	case ScopeFile:
		return "file"
	case ScopeProduction:
		return "production"
	default:
		return "unknown"
	}
}

// Attr is a counter or label attached to an event, e.g. tokens=12.
type Attr struct {
	Key   string
	Value string
}

// Event is one trace record.
type Event struct {
	At      time.Time
	Seq     uint64 // assigned by the tracer that stores the event
	Kind    Kind
	Scope   Scope
	ID      uint64 // span id; marks get a fresh one
	Parent  uint64 // 0 for roots
	Name    string // "parse", "tokenize", "parse-dir", "cache-hit"
	File    string // display path, empty when the event is not about one file
	Outcome string // "" on success, "error", "cached"; the note of a mark
	Attrs   []Attr // in the order they were set
	Took    time.Duration
}

// Lookup returns the value of the attribute key.
func (e *Event) Lookup(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
