package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

type TriviaOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Span    source.Span    `json:"span"`
	Line    uint32         `json:"line"`
	Col     uint32         `json:"col"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-22s", i+1, tok.Kind.Name()); err != nil {
			return err
		}
		if tok.Text != "" || tok.Kind == token.StringLiteral {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		if len(tok.Leading) > 0 {
			leading := make([]string, 0, len(tok.Leading))
			for _, trivia := range tok.Leading {
				leading = append(leading, trivia.Kind.String())
			}
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out := TokenOutput{
			Kind: tok.Kind.Name(),
			Text: tok.Text,
			Span: tok.Span,
			Line: pos.Line,
			Col:  pos.Col,
		}
		for _, trivia := range tok.Leading {
			out.Leading = append(out.Leading, TriviaOutput{Kind: trivia.Kind.String(), Text: trivia.Text, Span: trivia.Span})
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}
