package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"let":       KwLet,
		"var":       KwVar,
		"if":        KwIf,
		"else":      KwElse,
		"do":        KwDo,
		"while":     KwWhile,
		"for":       KwFor,
		"function":  KwFunction,
		"return":    KwReturn,
		"undefined": KwUndefined,
		"true":      BooleanLiteral,
		"false":     BooleanLiteral,
		"null":      NullLiteral,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
	if len(Keywords()) != len(cases) {
		t.Fatalf("Keywords() has %d entries, test covers %d", len(Keywords()), len(cases))
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Let", "NULL", "True", // регистр важен
		"const", "class", "switch", "break", // не входят в язык
		"letter", "iffy", "functions", "$for",
	}
	for _, s := range notKw {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", s, k)
		}
	}
}
