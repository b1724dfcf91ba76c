package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/dlclark/regexp2"

	"simpleparser/internal/source"
)

// Cursor представляет собой позицию в файле.
// Off считается в байтах (для Span), Pos в рунах (для regexp2).
type Cursor struct {
	File  *source.File
	Off   uint32
	Pos   int
	runes []rune
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		runes: []rune(string(f.Content)),
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Pos >= len(c.runes)
}

// Peek возвращает текущую руну или utf8.RuneError на EOF.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return utf8.RuneError
	}
	return c.runes[c.Pos]
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	if c.EOF() {
		return utf8.RuneError
	}
	r := c.runes[c.Pos]
	c.advance(1)
	return r
}

// Match tries re exactly at the cursor. On success the cursor moves past
// the match and the matched text is returned.
func (c *Cursor) Match(re *regexp2.Regexp) (string, bool) {
	m, err := re.FindRunesMatchStartingAt(c.runes, c.Pos)
	if err != nil || m == nil || m.Index != c.Pos || m.Length == 0 {
		return "", false
	}
	start := c.Off
	c.advance(m.Length)
	return string(c.File.Content[start:c.Off]), true
}

// advance moves n runes forward. Byte widths come from the raw content so
// invalid UTF-8 (one U+FFFD rune per bad byte) keeps Off in sync.
func (c *Cursor) advance(n int) {
	for iter := 0; iter < n; iter++ {
		_, size := utf8.DecodeRune(c.File.Content[c.Off:])
		c.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
		c.Pos++
	}
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	off uint32
	pos int
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, pos: c.Pos}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.off, End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off, c.Pos = m.off, m.pos
}
