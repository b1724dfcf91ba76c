package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelOff, false},
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"phase", LevelPhase, false},
		{" detail ", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		ev    Event
		want  bool
	}{
		{LevelOff, Event{Scope: ScopeCommand, Kind: KindBegin}, false},
		{LevelError, Event{Scope: ScopeStage, Kind: KindEnd, Outcome: "error"}, true},
		{LevelError, Event{Scope: ScopeStage, Kind: KindEnd}, false},
		{LevelError, Event{Scope: ScopeProduction, Kind: KindMark, Outcome: "error"}, false},
		{LevelPhase, Event{Scope: ScopeStage, Kind: KindEnd}, true},
		{LevelPhase, Event{Scope: ScopeFile, Kind: KindBegin}, false},
		{LevelDetail, Event{Scope: ScopeFile, Kind: KindBegin}, true},
		{LevelDetail, Event{Scope: ScopeProduction, Kind: KindMark}, false},
		{LevelDebug, Event{Scope: ScopeProduction, Kind: KindMark}, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(&tt.ev); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v %v %q) = %v, want %v", tt.level, tt.ev.Scope, tt.ev.Kind, tt.ev.Outcome, got, tt.want)
		}
	}
}

func TestLineTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLineTracer(&buf, LevelDetail, FormatText)

	walk := Begin(tr, ScopeCommand, "parse-dir", "", 0)
	file := Begin(tr, ScopeFile, "parse-file", "a.js", walk.ID())
	file.Count("tokens", 12).Set("cache", "off").Count("tokens", 13).End("error")
	Mark(tr, ScopeProduction, "cache-hit", "a.js", file.ID(), "") // отфильтровано
	walk.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ command parse-dir") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← file parse-file a.js [error] tokens=13 cache=off ") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestLineTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLineTracer(&buf, LevelDebug, FormatNDJSON)
	Mark(tr, ScopeProduction, "cache-hit", "b.js", 7, "stale")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if got["kind"] != "mark" || got["scope"] != "production" || got["file"] != "b.js" || got["outcome"] != "stale" {
		t.Errorf("unexpected event: %v", got)
	}
	if got["parent"] != float64(7) {
		t.Errorf("parent = %v", got["parent"])
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestLineTracerKeepsFirstWriteError(t *testing.T) {
	w := &failingWriter{}
	tr := NewLineTracer(w, LevelDebug, FormatText)
	Mark(tr, ScopeCommand, "a", "", 0, "")
	Mark(tr, ScopeCommand, "b", "", 0, "")
	if w.calls != 1 {
		t.Errorf("writes after failure: %d calls", w.calls)
	}
	if err := tr.Close(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Close = %v", err)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Mark(tr, ScopeProduction, name, "", 0, "")
	}
	if tr.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tr.Len())
	}
	var names []string
	for _, ev := range tr.Events() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Errorf("events = %s, want c,d,e", got)
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestRingTracerBeforeWrap(t *testing.T) {
	tr := NewRingTracer(4, LevelDebug)
	Mark(tr, ScopeCommand, "only", "", 0, "")
	events := tr.Events()
	if len(events) != 1 || events[0].Name != "only" || events[0].Seq == 0 {
		t.Fatalf("events = %+v", events)
	}
}

func TestRingTracerCopiesAttrs(t *testing.T) {
	tr := NewRingTracer(4, LevelDebug)
	s := Begin(tr, ScopeStage, "parse", "x.js", 0).Count("tokens", 1)
	s.End("")
	s.Set("tokens", "99")
	ev := tr.Events()[1]
	if got, _ := ev.Lookup("tokens"); got != "1" {
		t.Errorf("stored tokens = %q, want 1", got)
	}
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeCommand, "parse", "", 0).End("")

	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("expected ring tracer inside ModeBoth")
	}
	if ring.Len() != 2 {
		t.Errorf("ring holds %d events, want 2", ring.Len())
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("lines = %q", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("LevelOff tracer must be disabled")
	}
	s := Begin(tr, ScopeCommand, "x", "", 0)
	if s.Count("n", 1).End("") != 0 || s.ID() != 0 {
		t.Error("span on a disabled tracer should be inert")
	}
}

func TestFilteredScopeSpanIsInert(t *testing.T) {
	tr := NewRingTracer(4, LevelPhase)
	if s := Begin(tr, ScopeFile, "parse-file", "a.js", 0); s.ID() != 0 {
		t.Errorf("file span at phase level got id %d", s.ID())
	}
	if tr.Len() != 0 {
		t.Errorf("ring holds %d events", tr.Len())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should yield Nop")
	}
	tr := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("tracer not propagated")
	}
	span := Begin(tr, ScopeStage, "parse", "", 0)
	ctx = WithSpan(ctx, span)
	if ParentID(ctx) != span.ID() {
		t.Errorf("ParentID = %d, want %d", ParentID(ctx), span.ID())
	}
}

func TestParseFormatAndMode(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("expected error for unknown format")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
}
