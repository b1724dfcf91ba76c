package ast

import "simpleparser/internal/source"

// VariableDeclaration is both a statement and a for-loop init clause.
type VariableDeclaration struct {
	DeclKind     string // "let" | "var"
	Declarations []*VariableDeclarator
	Span         source.Span
}

type VariableDeclarator struct {
	ID   *Identifier
	Init Expression // nil without initializer
	Span source.Span
}

func (n *VariableDeclaration) Kind() NodeKind   { return NodeVariableDeclaration }
func (n *VariableDeclaration) Pos() source.Span { return n.Span }
func (*VariableDeclaration) stmtNode()          {}
func (*VariableDeclaration) forInit()           {}

func (n *VariableDeclarator) Kind() NodeKind   { return NodeVariableDeclarator }
func (n *VariableDeclarator) Pos() source.Span { return n.Span }
