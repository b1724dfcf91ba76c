package trace

import (
	"io"
	"slices"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory so a failed run can
// show what led up to the failure.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // slot of the next event
	count int
	level Level
}

// NewRingTracer holds up to size events (4096 when size <= 0).
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (r *RingTracer) Emit(ev *Event) {
	if !r.level.ShouldEmit(ev) {
		return
	}
	stored := *ev
	stored.Attrs = slices.Clone(ev.Attrs)

	r.mu.Lock()
	defer r.mu.Unlock()
	stored.Seq = nextSeq()
	r.buf[r.next] = stored
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Events returns the held events, oldest first.
func (r *RingTracer) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	first := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(first+i)%len(r.buf)])
	}
	return out
}

// Len is the number of held events.
func (r *RingTracer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Dump writes the held events to w, oldest first.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *RingTracer) Flush() error  { return nil }
func (r *RingTracer) Close() error  { return nil }
func (r *RingTracer) Level() Level  { return r.level }
func (r *RingTracer) Enabled() bool { return r.level > LevelOff }
