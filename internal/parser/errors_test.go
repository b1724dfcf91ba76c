package parser

import (
	"context"
	"errors"
	"testing"

	"simpleparser/internal/diag"
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		code diag.Code
	}{
		{"missing semicolon at EOF", "a", "unexpected EOF, expected ';'", diag.SynUnexpectedEOF},
		{"missing semicolon before token", "a b", "unexpected EOF, expected ';' received 'b'", diag.SynExpectSemicolon},
		{"double star", "50**", "unexpected token '*'", diag.SynUnexpectedToken},
		{"unknown character", "#;", "unexpected token 'undefined'", diag.SynUnexpectedToken},
		{"literal position at EOF", "1 +", "unexpected token 'undefined'", diag.SynUnexpectedEOF},
		{"keyword as expression", "else;", "unexpected token 'else'", diag.SynUnexpectedToken},
		{"unclosed block", "{ x = 1;", "unexpected EOF, expected '}'", diag.SynUnexpectedEOF},
		{"unclosed paren", "(1 + 2;", "unexpected EOF, expected ')' received ';'", diag.SynUnexpectedToken},
		{"missing close bracket", "a[1;", "unexpected EOF, expected ']' received ';'", diag.SynUnexpectedToken},
		{"dot needs identifier", "a.1;", "unexpected EOF, expected 'Identifier' received '1'", diag.SynUnexpectedToken},
		{"let needs identifier", "let 1 = 2;", "unexpected EOF, expected 'Identifier' received '1'", diag.SynUnexpectedToken},
		{"do needs semicolon", "do {} while (x)", "unexpected EOF, expected ';'", diag.SynUnexpectedEOF},
		{"do needs while", "do {} if (x);", "unexpected EOF, expected 'while' received 'if'", diag.SynUnexpectedToken},
		{"function needs name", "function (a) {}", "unexpected EOF, expected 'Identifier' received '('", diag.SynUnexpectedToken},
		{"function needs block", "function f() return;", "unexpected EOF, expected '{' received 'return'", diag.SynUnexpectedToken},
		{"param list", "function f(a b) {}", "unexpected EOF, expected ')' received 'b'", diag.SynUnexpectedToken},
		{"trailing comma in args", "f(a,);", "unexpected token ')'", diag.SynUnexpectedToken},
		{"stray close brace", "}", "unexpected token '}'", diag.SynUnexpectedToken},
		{"invalid assignment target", "1 = 2;", "invalid left-hand side in assignment expression", diag.SynInvalidAssignTarget},
		{"call is not assignable", "f() = 2;", "invalid left-hand side in assignment expression", diag.SynInvalidAssignTarget},
		{"unterminated string", `x = "abc;`, "unexpected token 'undefined'", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error %q", tt.src, tt.msg)
			}
			if prog != nil {
				t.Errorf("Parse(%q) returned a partial tree", tt.src)
			}
			if err.Error() != tt.msg {
				t.Errorf("Parse(%q) error = %q, want %q", tt.src, err.Error(), tt.msg)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if perr.Code != tt.code {
				t.Errorf("code = %v, want %v", perr.Code.ID(), tt.code.ID())
			}
		})
	}
}

func TestParseErrorDetails(t *testing.T) {
	_, err := Parse("let x = 1 2;")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if perr.Expected != token.LineTerminator {
		t.Errorf("Expected = %v, want ;", perr.Expected)
	}
	if perr.Got.Kind != token.NumericLiteral || perr.Got.Text != "2" {
		t.Errorf("Got = %+v", perr.Got)
	}
	if perr.Span.Start != 10 || perr.Span.End != 11 {
		t.Errorf("Span = %v, want 10-11", perr.Span)
	}
}

func TestParseFileReportsDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.js", []byte("x = @;")))
	bag := diag.NewBag(0)

	_, err := ParseFile(context.Background(), file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected error")
	}
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want lexer + parser: %v", len(items), items)
	}
	if items[0].Code != diag.LexUnknownChar {
		t.Errorf("first diagnostic = %v, want %v", items[0].Code.ID(), diag.LexUnknownChar.ID())
	}
	if items[1].Code != diag.SynUnexpectedToken || items[1].Message != "unexpected token 'undefined'" {
		t.Errorf("second diagnostic = %v %q", items[1].Code.ID(), items[1].Message)
	}
}

func TestParseIsReentrant(t *testing.T) {
	done := make(chan error, 8)
	for iter := 0; iter < 8; iter++ {
		go func() {
			_, err := Parse("function f(a) { return a * 2; } f(21);")
			done <- err
		}()
	}
	for iter := 0; iter < 8; iter++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

func TestMissingSemicolonCarriesFix(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantFix bool
		at      uint32
	}{
		{"before next token", "let a = 1 b;", true, 9},
		{"at end of input", "x = f(1)", true, 8},
		{"other expectation", "(1;", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("semi.js", []byte(tt.src)))
			bag := diag.NewBag(0)
			if _, err := ParseFile(context.Background(), file, Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
				t.Fatal("expected error")
			}
			items := bag.Items()
			if len(items) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(items))
			}
			fixes := items[0].Fixes
			if !tt.wantFix {
				if len(fixes) != 0 {
					t.Fatalf("unexpected fixes %+v", fixes)
				}
				return
			}
			if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
				t.Fatalf("fixes = %+v", fixes)
			}
			edit := fixes[0].Edits[0]
			if edit.NewText != ";" || edit.Span.Start != tt.at || edit.Span.End != tt.at {
				t.Errorf("edit = %+v, want insert ';' at %d", edit, tt.at)
			}
		})
	}
}
