package token_test

import (
	"testing"

	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

func TestTriviaShape(t *testing.T) {
	tok := token.Token{
		Kind: token.KwLet,
		Span: source.Span{Start: 12, End: 15},
		Text: "let",
		Leading: []token.Trivia{
			{Kind: token.TriviaLineComment, Span: source.Span{Start: 0, End: 11}, Text: "// leading"},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 11, End: 12}, Text: "\n"},
		},
	}
	if len(tok.Leading) != 2 || tok.Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("trivia must be kept in source order")
	}
	if tok.Leading[1].Span.End > tok.Span.Start {
		t.Fatalf("leading trivia must end before the token")
	}
}

func TestTriviaKindString(t *testing.T) {
	want := map[token.TriviaKind]string{
		token.TriviaSpace:        "Space",
		token.TriviaNewline:      "Newline",
		token.TriviaLineComment:  "LineComment",
		token.TriviaBlockComment: "BlockComment",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}
