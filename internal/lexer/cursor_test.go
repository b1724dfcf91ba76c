package lexer

import (
	"testing"

	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.js", []byte(content)))
}

func TestCursorMatchIsAnchored(t *testing.T) {
	c := NewCursor(createFile("ab 12"))
	num := anchored(`[0-9]+`)
	if _, ok := c.Match(num); ok {
		t.Fatal("match must not skip ahead of the cursor")
	}
	if c.Off != 0 || c.Pos != 0 {
		t.Fatalf("failed match moved cursor to %d/%d", c.Off, c.Pos)
	}
	c.Bump()
	c.Bump()
	c.Bump()
	text, ok := c.Match(num)
	if !ok || text != "12" || c.Off != 5 || !c.EOF() {
		t.Fatalf("Match = %q, %v; off=%d", text, ok, c.Off)
	}
}

func TestCursorByteAndRuneOffsets(t *testing.T) {
	c := NewCursor(createFile("ж'ё'x"))
	if r := c.Bump(); r != 'ж' || c.Off != 2 || c.Pos != 1 {
		t.Fatalf("Bump = %q off=%d pos=%d", r, c.Off, c.Pos)
	}
	text, ok := c.Match(anchored(`'[^']*'`))
	if !ok || text != "'ё'" || c.Off != 6 || c.Pos != 4 {
		t.Fatalf("Match = %q off=%d pos=%d", text, c.Off, c.Pos)
	}
	if c.Peek() != 'x' {
		t.Fatalf("Peek = %q", c.Peek())
	}
}

func TestCursorInvalidUTF8(t *testing.T) {
	c := NewCursor(createFile("\xffa"))
	c.Bump()
	if c.Off != 1 || c.Peek() != 'a' {
		t.Fatalf("invalid byte must advance one byte, off=%d", c.Off)
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor(createFile("hello"))
	c.Bump()
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 1 || sp.End != 3 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Off != 1 || c.Peek() != 'e' {
		t.Fatalf("Reset: off=%d peek=%q", c.Off, c.Peek())
	}
}

func TestRuleTableOrder(t *testing.T) {
	// ключевые слова раньше идентификаторов, составные операторы раньше простых
	idx := func(pred func(rule) bool) int {
		for i, r := range rules {
			if pred(r) {
				return i
			}
		}
		return -1
	}
	kw := idx(func(r rule) bool { return r.classify != nil })
	ident := idx(func(r rule) bool { return r.classify == nil && r.kind == token.Identifier })
	if kw < 0 || ident < 0 || kw > ident {
		t.Fatalf("keyword row %d must precede identifier row %d", kw, ident)
	}
}
