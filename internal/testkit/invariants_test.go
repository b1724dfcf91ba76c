package testkit

import (
	"strings"
	"testing"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.js", []byte("a = 1;")))
	sp := func(s, e uint32) source.Span { return source.Span{File: sf.ID, Start: s, End: e} }

	good := &ast.Program{Span: sp(0, 6), Body: []ast.Statement{
		&ast.ExpressionStatement{Span: sp(0, 6), Expression: &ast.AssignmentExpression{
			Operator: "=", Span: sp(0, 5),
			Left:  &ast.Identifier{Name: "a", Span: sp(0, 1)},
			Right: &ast.NumericLiteral{Value: 1, Span: sp(4, 5)},
		}},
	}}
	if err := CheckSpanInvariants(good, sf); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	bad := &ast.Program{Span: sp(0, 6), Body: []ast.Statement{
		&ast.ExpressionStatement{Span: sp(0, 3), Expression: &ast.Identifier{Name: "a", Span: sp(2, 5)}},
	}}
	err := CheckSpanInvariants(bad, sf)
	if err == nil || !strings.Contains(err.Error(), "outside") {
		t.Fatalf("expected containment error, got %v", err)
	}

	if err := CheckSpanInvariants(nil, sf); err == nil {
		t.Fatal("nil program accepted")
	}
}
