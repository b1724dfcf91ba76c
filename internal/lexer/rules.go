package lexer

import (
	"strings"

	"github.com/dlclark/regexp2"

	"simpleparser/internal/token"
)

// rule is one row of the token table. Rows are tried in order at the cursor
// and the first match wins.
type rule struct {
	kind token.Kind
	// skip rows produce trivia instead of tokens.
	skip   bool
	trivia token.TriviaKind
	re     *regexp2.Regexp
	// classify refines kind from the matched text (keywords).
	classify func(string) token.Kind
	// transform rewrites the token text (string literals lose their quotes).
	transform func(string) string
}

// anchored compiles p so it only matches at the starting position handed
// to FindRunesMatchStartingAt.
func anchored(p string) *regexp2.Regexp {
	return regexp2.MustCompile(`\G(?:`+p+`)`, regexp2.None)
}

func stripQuotes(s string) string {
	return s[1 : len(s)-1]
}

func keywordKind(s string) token.Kind {
	if k, ok := token.LookupKeyword(s); ok {
		return k
	}
	return token.Identifier
}

var keywordPattern = `\b(?:let|var|if|else|true|false|null|do|while|for|function|return|undefined)\b(?![$])`

// rules is read-only after init; regexp2 patterns are safe for concurrent matching.
var rules = []rule{
	{skip: true, trivia: token.TriviaSpace, re: anchored(`\s+`)},
	{skip: true, trivia: token.TriviaLineComment, re: anchored(`//[^\n]*`)},
	{skip: true, trivia: token.TriviaBlockComment, re: anchored(`/\*[\s\S]*?\*/`)},

	{kind: token.NumericLiteral, re: anchored(`[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`)},
	{kind: token.StringLiteral, re: anchored(`"(?:[^"\\]|\\.)*"`), transform: stripQuotes},
	{kind: token.StringLiteral, re: anchored(`'(?:[^'\\]|\\.)*'`), transform: stripQuotes},

	{kind: token.Identifier, re: anchored(keywordPattern), classify: keywordKind},

	{kind: token.LogicalAnd, re: anchored(`&&`)},
	{kind: token.LogicalOr, re: anchored(`\|\|`)},
	{kind: token.ComplexAssignment, re: anchored(`[-+*/]=`)},
	{kind: token.EqualityOperator, re: anchored(`[!=]=`)},
	{kind: token.RelationalOperator, re: anchored(`[<>]=?`)},
	{kind: token.LogicalNot, re: anchored(`!`)},
	{kind: token.SimpleAssignment, re: anchored(`=`)},
	{kind: token.AddOperator, re: anchored(`[-+]`)},
	{kind: token.MultiplicationOperator, re: anchored(`[*/]`)},

	{kind: token.OpenBlock, re: anchored(`\{`)},
	{kind: token.CloseBlock, re: anchored(`\}`)},
	{kind: token.OpenParen, re: anchored(`\(`)},
	{kind: token.CloseParen, re: anchored(`\)`)},
	{kind: token.LineTerminator, re: anchored(`;`)},
	{kind: token.Comma, re: anchored(`,`)},
	{kind: token.MemberOperator, re: anchored(`[.\[\]]`)},

	{kind: token.Identifier, re: anchored(`[A-Za-z_$][A-Za-z0-9_$]*`)},
}

// triviaKind splits whitespace runs that cross a line from plain spaces.
func (r *rule) triviaKind(text string) token.TriviaKind {
	if r.trivia == token.TriviaSpace && strings.Contains(text, "\n") {
		return token.TriviaNewline
	}
	return r.trivia
}
