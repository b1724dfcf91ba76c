package ui

import (
	"strings"
	"testing"

	"simpleparser/internal/buildpipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("parse", []string{"a.js", "b.js", "c.js"}, events).(*progressModel)

	feed := []buildpipeline.Event{
		{File: "a.js", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking},
		{File: "a.js", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone},
		{File: "b.js", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError},
		{File: "c.js", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusCached},
		{File: "unknown.js", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone},
		{Stage: buildpipeline.StageEncode, Status: buildpipeline.StatusWorking},
	}
	for _, ev := range feed {
		m.Update(eventMsg(ev))
	}

	want := []string{"done", "error", "cached"}
	for i, item := range m.items {
		if item.status != want[i] {
			t.Errorf("items[%d].status = %q, want %q", i, item.status, want[i])
		}
	}
	if m.stageLabel != "encoding" {
		t.Errorf("stageLabel = %q", m.stageLabel)
	}
	view := m.View()
	for _, s := range []string{"parse (encoding)", "a.js", "3/3 parsed, 1 cached, 1 failed"} {
		if !strings.Contains(view, s) {
			t.Errorf("view misses %q:\n%s", s, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: parse") {
		t.Error("model did not finish")
	}
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		stage  buildpipeline.Stage
		status buildpipeline.Status
		want   string
	}{
		{buildpipeline.StageLoad, buildpipeline.StatusWorking, "loading"},
		{buildpipeline.StageParse, buildpipeline.StatusWorking, "parsing"},
		{buildpipeline.StageParse, buildpipeline.StatusQueued, "queued"},
		{buildpipeline.StageParse, buildpipeline.StatusCached, "cached"},
		{buildpipeline.Stage("other"), buildpipeline.StatusWorking, ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("日本語テキスト", 7); got != "日本..." {
		t.Errorf("wide truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
