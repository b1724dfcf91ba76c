package trace

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// LineTracer writes one line per event as it arrives. After the first failed
// write it stops writing; Flush and Close report that error.
type LineTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	err    error
}

func NewLineTracer(w io.Writer, level Level, format Format) *LineTracer {
	return &LineTracer{w: w, level: level, format: format}
}

func (t *LineTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	ev.Seq = nextSeq()
	if _, err := t.w.Write(FormatEvent(ev, t.format)); err != nil {
		t.err = fmt.Errorf("trace write: %w", err)
	}
}

// Flush returns the first write error, then flushes a buffered writer.
func (t *LineTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer when it is an io.Closer.
func (t *LineTracer) Close() error {
	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *LineTracer) Level() Level  { return t.level }
func (t *LineTracer) Enabled() bool { return t.level > LevelOff }
