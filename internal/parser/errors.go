package parser

import (
	"fmt"

	"simpleparser/internal/diag"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

// ParseError is the single failure kind of the parser.
// Error returns Msg unchanged so callers can match on it.
type ParseError struct {
	Code     diag.Code
	Msg      string
	Span     source.Span
	Expected token.Kind // zero unless the error came from a failed eat
	Got      token.Token
	Prev     source.Span // last consumed token; zero at the start of input
}

func (e *ParseError) Error() string { return e.Msg }

// expectedError builds the kind-mismatch error. The "unexpected EOF" wording
// is used for every mismatch; only the received part tells them apart.
func expectedError(want string, k token.Kind, got token.Token, prev source.Span) *ParseError {
	code := diag.SynUnexpectedToken
	if got.Kind == token.EOF {
		code = diag.SynUnexpectedEOF
	} else if k == token.LineTerminator {
		code = diag.SynExpectSemicolon
	}
	msg := fmt.Sprintf("unexpected EOF, expected '%s'", want)
	if got.Kind != token.EOF && got.Text != "" {
		msg += fmt.Sprintf(" received '%s'", got.Text)
	}
	return &ParseError{Code: code, Msg: msg, Span: got.Span, Expected: k, Got: got, Prev: prev}
}

// unexpectedError reports a token that cannot start a literal.
func unexpectedError(got token.Token) *ParseError {
	text := got.Text
	if text == "" {
		text = "undefined"
	}
	code := diag.SynUnexpectedToken
	if got.Kind == token.EOF {
		code = diag.SynUnexpectedEOF
	}
	return &ParseError{
		Code: code,
		Msg:  fmt.Sprintf("unexpected token '%s'", text),
		Span: got.Span,
		Got:  got,
	}
}

func invalidTargetError(sp source.Span) *ParseError {
	return &ParseError{
		Code: diag.SynInvalidAssignTarget,
		Msg:  "invalid left-hand side in assignment expression",
		Span: sp,
	}
}

// report sends e to r, with a quick fix when a missing ';' can be inserted
// right after the previous token.
func (e *ParseError) report(r diag.Reporter) {
	if r == nil {
		return
	}
	b := diag.ReportError(r, e.Code, e.Span, e.Msg)
	if e.Expected == token.LineTerminator && e.Prev != (source.Span{}) {
		at := source.Span{File: e.Prev.File, Start: e.Prev.End, End: e.Prev.End}
		b = b.WithFix("insert ';'", diag.FixEdit{Span: at, NewText: ";"})
	}
	b.Emit()
}
