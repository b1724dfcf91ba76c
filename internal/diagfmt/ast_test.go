package diagfmt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"simpleparser/internal/parser"
	"simpleparser/internal/source"
)

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("p.js", []byte("if (a) b = 1;")))
	prog, err := parser.ParseFile(context.Background(), file, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, prog, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"p.js Program (span: 1:1-1:14)",
		"└─ body[0]: IfStatement (span: 1:1-1:14)",
		"   ├─ test: Identifier a (span: 1:5-1:6)",
		"   ├─ consequent: ExpressionStatement (span: 1:8-1:14)",
		"   │  └─ expression: AssignmentExpression = (span: 1:8-1:13)",
		"   │     ├─ left: Identifier b (span: 1:8-1:9)",
		"   │     └─ right: NumericLiteral 1 (span: 1:12-1:13)",
		"   └─ alternate: null",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTGraph(t *testing.T) {
	prog, err := parser.Parse("1 + 2;")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTGraph(&buf, prog); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Program") || !strings.Contains(lines[len(lines)-1], "left: NumericLiteral 1") {
		t.Errorf("unexpected graph:\n%s", buf.String())
	}
	if !strings.Contains(lines[5], "/") || !strings.Contains(lines[5], "\\") {
		t.Errorf("binary node should fan out both ways:\n%s", buf.String())
	}
}

func TestFormatASTJSONAndMsgpackAgree(t *testing.T) {
	prog, err := parser.Parse("let s = 'a' + \"<b>\";")
	if err != nil {
		t.Fatal(err)
	}
	var js bytes.Buffer
	if err := FormatASTJSON(&js, prog, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"value":"<b>"`) {
		t.Errorf("HTML characters escaped: %s", js.String())
	}

	var mp bytes.Buffer
	if err := FormatASTMsgpack(&mp, prog); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := msgpack.Unmarshal(mp.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "Program" {
		t.Errorf("decoded = %v", decoded)
	}
	body, ok := decoded["body"].([]any)
	if !ok || len(body) != 1 {
		t.Fatalf("body = %#v", decoded["body"])
	}
}
