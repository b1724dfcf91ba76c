package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // by output extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		At      string            `json:"at"`
		Seq     uint64            `json:"seq"`
		Kind    string            `json:"kind"`
		Scope   string            `json:"scope"`
		ID      uint64            `json:"id"`
		Parent  uint64            `json:"parent,omitempty"`
		Name    string            `json:"name"`
		File    string            `json:"file,omitempty"`
		Outcome string            `json:"outcome,omitempty"`
		Attrs   map[string]string `json:"attrs,omitempty"`
		TookUS  int64             `json:"took_us,omitempty"`
	}
	var attrs map[string]string
	if len(ev.Attrs) > 0 {
		attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(jsonEvent{
		At:      ev.At.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:     ev.Seq,
		Kind:    ev.Kind.String(),
		Scope:   ev.Scope.String(),
		ID:      ev.ID,
		Parent:  ev.Parent,
		Name:    ev.Name,
		File:    ev.File,
		Outcome: ev.Outcome,
		Attrs:   attrs,
		TookUS:  ev.Took.Microseconds(),
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText renders one line:
//
//	#seq  → stage parse a.js
//	#seq    ← file parse-file a.js [error] tokens=12 1.2ms
//
// Nested events are indented once; attributes keep the order they were set in.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%-5d ", ev.Seq)
	if ev.Parent > 0 {
		sb.WriteString("  ")
	}
	switch ev.Kind {
	case KindBegin:
		sb.WriteString("→ ")
	case KindEnd:
		sb.WriteString("← ")
	case KindMark:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Scope.String())
	sb.WriteByte(' ')
	sb.WriteString(ev.Name)
	if ev.File != "" {
		sb.WriteByte(' ')
		sb.WriteString(ev.File)
	}
	if ev.Outcome != "" {
		fmt.Fprintf(&sb, " [%s]", ev.Outcome)
	}
	for _, a := range ev.Attrs {
		fmt.Fprintf(&sb, " %s=%s", a.Key, a.Value)
	}
	if ev.Kind == KindEnd {
		fmt.Fprintf(&sb, " %s", ev.Took)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
