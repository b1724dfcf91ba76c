package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failed stages and files
	LevelPhase               // command and stage spans
	LevelDetail              // adds per-file spans
	LevelDebug               // everything
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// Records reports whether spans of scope are tracked at l.
func (l Level) Records(scope Scope) bool {
	switch l {
	case LevelError, LevelDetail:
		return scope <= ScopeFile
	case LevelPhase:
		return scope <= ScopeStage
	case LevelDebug:
		return true
	}
	return false
}

// ShouldEmit reports whether ev is written at l. LevelError keeps only
// events whose outcome is "error".
func (l Level) ShouldEmit(ev *Event) bool {
	if !l.Records(ev.Scope) {
		return false
	}
	if l == LevelError {
		return ev.Outcome == "error"
	}
	return true
}
