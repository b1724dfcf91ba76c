package lsp

import (
	"context"
	"strings"
	"testing"
	"unicode/utf16"
)

const testURI = "file:///workspace/main.js"

func analyzeText(t *testing.T, content string) *snapshot {
	t.Helper()
	snap := analyzeDocument(context.Background(), document{uri: testURI, version: 1, text: content, rev: 1}, 20)
	if snap == nil || snap.file == nil {
		t.Fatal("expected snapshot")
	}
	return snap
}

func mustParse(t *testing.T, content string) *snapshot {
	t.Helper()
	snap := analyzeText(t, content)
	if snap.program == nil {
		t.Fatalf("parse failed: %v", snap.parseErr)
	}
	return snap
}

// posOf returns the position of the n-th (0-based) occurrence of needle plus delta bytes.
func posOf(t *testing.T, text, needle string, n, delta int) position {
	t.Helper()
	off := -1
	from := 0
	for i := 0; i <= n; i++ {
		idx := strings.Index(text[from:], needle)
		if idx < 0 {
			t.Fatalf("occurrence %d of %q not found", n, needle)
		}
		off = from + idx
		from = off + 1
	}
	return positionForOffsetUTF16(text, off+delta)
}

func positionForOffsetUTF16(text string, offset int) position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndex(text[:offset], "\n") + 1
	units := 0
	for _, r := range text[lineStart:offset] {
		n := len(utf16.Encode([]rune{r}))
		if n < 0 {
			n = 1
		}
		units += n
	}
	return position{Line: line, Character: units}
}
