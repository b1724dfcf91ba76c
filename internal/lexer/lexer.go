package lexer

import (
	"fmt"

	"simpleparser/internal/diag"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes src as an anonymous file and returns every token up to and
// including EOF.
func Tokenize(src string) []token.Token {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("<input>", []byte(src))), Options{})
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		if lx.cursor.EOF() {
			return lx.emit(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
		}
		start := lx.cursor.Mark()
		r, text, ok := lx.matchRule()
		if !ok {
			return lx.emit(lx.invalid(start))
		}
		sp := lx.cursor.SpanFrom(start)
		if r.skip {
			if lx.opts.KeepTrivia {
				lx.hold = append(lx.hold, token.Trivia{Kind: r.triviaKind(text), Span: sp, Text: text})
			}
			continue
		}

		tok := token.Token{Kind: r.kind, Span: sp, Text: text}
		if r.classify != nil {
			tok.Kind = r.classify(text)
		}
		if r.transform != nil {
			tok.Text = r.transform(text)
		}
		return lx.emit(tok)
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) matchRule() (*rule, string, bool) {
	for i := range rules {
		if text, ok := lx.cursor.Match(rules[i].re); ok {
			return &rules[i], text, true
		}
	}
	return nil, "", false
}

// invalid consumes one rune that no rule accepts.
func (lx *Lexer) invalid(start Mark) token.Token {
	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	code, msg := diag.LexUnknownChar, fmt.Sprintf("unknown character %q", ch)
	if ch == '"' || ch == '\'' {
		code, msg = diag.LexUnterminatedString, "unterminated string literal"
	}
	lx.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}
}

func (lx *Lexer) emit(tok token.Token) token.Token {
	if len(lx.hold) > 0 {
		tok.Leading = lx.hold
		lx.hold = nil
	}
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
