package token_test

import (
	"testing"

	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.LineTerminator: ";",
		token.OpenBlock:      "{",
		token.CloseBlock:     "}",
		token.OpenParen:      "(",
		token.CloseParen:     ")",
		token.Comma:          ",",
		token.NumericLiteral: "NumericLiteral",
		token.Identifier:     "Identifier",
		token.KwFunction:     "function",
		token.EOF:            "EOF",
		token.Invalid:        "undefined",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%s.String() = %q, want %q", k.Name(), got, want)
		}
	}
}

func TestEveryKindNamed(t *testing.T) {
	for k := token.Invalid; k <= token.LogicalNot; k++ {
		if k.String() == "" || k.String() == "Kind(?)" {
			t.Errorf("kind %d has no display string", k)
		}
		if k.Name() == "" || k.Name() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if token.LogicalNot.Name() != "LogicalNot" || token.KwUndefined.Name() != "KwUndefined" {
		t.Fatalf("goNames out of sync with the const block")
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Errorf("out of range kind must not panic")
	}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.NumericLiteral, token.StringLiteral, token.BooleanLiteral, token.NullLiteral}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Identifier, token.KwLet, token.AddOperator, token.OpenParen, token.KwUndefined}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestClassifiers(t *testing.T) {
	for k := token.KwLet; k <= token.KwUndefined; k++ {
		if !tok(k).IsKeyword() {
			t.Errorf("%v should be keyword", k)
		}
	}
	if tok(token.BooleanLiteral).IsKeyword() {
		t.Error("boolean literal is not a keyword token")
	}
	for _, k := range []token.Kind{token.AddOperator, token.LogicalAnd, token.ComplexAssignment, token.LogicalNot} {
		if !tok(k).IsOperator() {
			t.Errorf("%v should be operator", k)
		}
	}
	if tok(token.Comma).IsOperator() {
		t.Error("comma is punctuation")
	}
	if !tok(token.SimpleAssignment).IsAssignment() || !tok(token.ComplexAssignment).IsAssignment() {
		t.Error("assignment kinds not recognised")
	}
	if tok(token.EqualityOperator).IsAssignment() {
		t.Error("== is not an assignment")
	}
}

func TestIs(t *testing.T) {
	br := token.Token{Kind: token.MemberOperator, Text: "]"}
	if !br.Is(token.MemberOperator, "]") || !br.Is(token.MemberOperator, "") {
		t.Error("Is should match kind with and without text")
	}
	if br.Is(token.MemberOperator, ".") || br.Is(token.Comma, "") {
		t.Error("Is matched wrong text or kind")
	}
}
