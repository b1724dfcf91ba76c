package lsp

import (
	"strings"
	"testing"
)

func TestUTF16SpanMapping(t *testing.T) {
	src := strings.Join([]string{
		"let s = \"\u00e9\U0001F642\"; let n = foo(s);",
		"n;",
		"",
	}, "\n")
	snap := analyzeText(t, src)

	for _, needle := range []string{"let n", "foo(s)", "n;"} {
		off := strings.Index(src, needle)
		want := positionForOffsetUTF16(src, off)
		got := positionForOffsetInFile(snap.file, uint32(off)) // #nosec G115 -- test input is small
		if got != want {
			t.Errorf("%q: position %+v, want %+v", needle, got, want)
		}
		if back := offsetForPositionInFile(snap.file, want); int(back) != off {
			t.Errorf("%q: offset %d, want %d", needle, back, off)
		}
	}
	// é — одна UTF-16 единица, 🙂 — две
	if got := positionForOffsetInFile(snap.file, uint32(strings.Index(src, "\";"))); got.Character != 12 {
		t.Errorf("character after emoji = %d, want 12", got.Character)
	}
}

func TestOffsetForPositionClamps(t *testing.T) {
	snap := analyzeText(t, "ab\ncd")
	tests := []struct {
		pos  position
		want uint32
	}{
		{position{Line: 0, Character: 99}, 2},
		{position{Line: 1, Character: 1}, 4},
		{position{Line: 7, Character: 0}, 5},
		{position{Line: -1, Character: 0}, 0},
	}
	for _, tt := range tests {
		if got := offsetForPositionInFile(snap.file, tt.pos); got != tt.want {
			t.Errorf("offset(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestApplyChanges(t *testing.T) {
	text := "let a = 1;\nlet b = 2;\n"
	got := applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{Line: 1, Character: 4}, End: position{Line: 1, Character: 5}}, Text: "total"},
		{Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 0}}, Text: "// head\n"},
	})
	if want := "// head\nlet a = 1;\nlet total = 2;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := applyChanges(text, []textDocumentContentChangeEvent{{Text: "x;"}}); got != "x;" {
		t.Errorf("full replace = %q", got)
	}
}
