package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

// счётчики общие для всех трассировщиков: у файлов из разных горутин разные id
var counters struct {
	seq  atomic.Uint64
	span atomic.Uint64
}

func nextSeq() uint64 { return counters.seq.Add(1) }

// Span is an open unit of work. Attributes set on it go to the end event.
// A span begun on a disabled tracer or a filtered scope is inert: every
// method is a no-op and ID is 0.
type Span struct {
	tracer Tracer
	begin  Event
	attrs  []Attr
}

// Begin opens a span under parent. file is the display path of the source
// the span works on, or "".
func Begin(t Tracer, scope Scope, name, file string, parent uint64) *Span {
	if t == nil || !t.Level().Records(scope) {
		return &Span{tracer: Nop}
	}
	ev := Event{
		At:     time.Now(),
		Kind:   KindBegin,
		Scope:  scope,
		ID:     counters.span.Add(1),
		Parent: parent,
		Name:   name,
		File:   file,
	}
	t.Emit(&ev)
	ev.Seq = 0
	return &Span{tracer: t, begin: ev}
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// Set records key=value, replacing an earlier value of key.
func (s *Span) Set(key, value string) *Span {
	if !s.live() {
		return s
	}
	for i := range s.attrs {
		if s.attrs[i].Key == key {
			s.attrs[i].Value = value
			return s
		}
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// Count records an integer attribute such as a token or node count.
func (s *Span) Count(key string, n int) *Span {
	return s.Set(key, strconv.Itoa(n))
}

// End closes the span with outcome ("" on success) and returns its duration.
func (s *Span) End(outcome string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.begin
	ev.At = time.Now()
	ev.Kind = KindEnd
	ev.Outcome = outcome
	ev.Attrs = s.attrs
	ev.Took = ev.At.Sub(s.begin.At)
	s.tracer.Emit(&ev)
	return ev.Took
}

// ID is the span id to pass as parent of nested spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.ID
}

// Mark emits an instant event, e.g. a parse cache hit.
func Mark(t Tracer, scope Scope, name, file string, parent uint64, note string) {
	if t == nil || !t.Level().Records(scope) {
		return
	}
	t.Emit(&Event{
		At:      time.Now(),
		Kind:    KindMark,
		Scope:   scope,
		ID:      counters.span.Add(1),
		Parent:  parent,
		Name:    name,
		File:    file,
		Outcome: note,
	})
}
