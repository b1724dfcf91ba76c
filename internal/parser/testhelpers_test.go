package parser

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
	"simpleparser/internal/testkit"
)

// parseChecked parses src through ParseFile and verifies span invariants.
func parseChecked(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	prog, err := ParseFile(context.Background(), file, Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if err := testkit.CheckSpanInvariants(prog, file); err != nil {
		t.Fatalf("span invariants for %q: %v", src, err)
	}
	return prog
}

func canonical(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	return v
}

// assertAST compares the parse of src with the JSON tree want.
func assertAST(t *testing.T, src, want string) {
	t.Helper()
	prog := parseChecked(t, src)
	got, err := ast.Marshal(prog, "")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !reflect.DeepEqual(canonical(t, got), canonical(t, []byte(want))) {
		t.Fatalf("AST mismatch for %q\nwant: %s\ngot:  %s", src, want, got)
	}
}

// sameAST reports whether a and b parse to identical trees.
func sameAST(t *testing.T, a, b string) bool {
	t.Helper()
	ja, err := ast.Marshal(parseChecked(t, a), "")
	if err != nil {
		t.Fatal(err)
	}
	jb, err := ast.Marshal(parseChecked(t, b), "")
	if err != nil {
		t.Fatal(err)
	}
	return reflect.DeepEqual(canonical(t, ja), canonical(t, jb))
}

func list(items ...string) string {
	return "[" + strings.Join(items, ",") + "]"
}

func program(stmts ...string) string {
	return `{"type":"Program","body":` + list(stmts...) + `}`
}

func block(stmts ...string) string {
	return `{"type":"BlockStatement","body":` + list(stmts...) + `}`
}

func exprStmt(e string) string {
	return `{"type":"ExpressionStatement","expression":` + e + `}`
}

func numLit(v string) string { return `{"type":"NumericLiteral","value":` + v + `}` }

func ident(name string) string { return `{"type":"Identifier","name":"` + name + `"}` }

func binary(op, l, r string) string {
	return `{"type":"BinaryExpression","operator":"` + op + `","left":` + l + `,"right":` + r + `}`
}

func assign(op, l, r string) string {
	return `{"type":"AssignmentExpression","operator":"` + op + `","left":` + l + `,"right":` + r + `}`
}

func member(obj, prop string, computed bool) string {
	c := "false"
	if computed {
		c = "true"
	}
	return `{"type":"MemberExpression","object":` + obj + `,"property":` + prop + `,"computed":` + c + `,"optional":false}`
}

func call(callee string, args ...string) string {
	return `{"type":"CallExpression","callee":` + callee + `,"arguments":` + list(args...) + `,"optional":false}`
}
