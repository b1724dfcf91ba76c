package fuzztests

import (
	"testing"

	"simpleparser/internal/diag"
	"simpleparser/internal/lexer"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.js", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter, KeepTrivia: true})
		var prevEnd uint32
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start < prevEnd || tok.Span.End <= tok.Span.Start {
				t.Fatalf("token %d %v has bad span %v after %d", i, tok.Kind, tok.Span, prevEnd)
			}
			if int(tok.Span.End) > len(input) {
				t.Fatalf("token %d span %v beyond input of %d bytes", i, tok.Span, len(input))
			}
			prevEnd = tok.Span.End
			if i > len(input) {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}
