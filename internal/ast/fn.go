package ast

import "simpleparser/internal/source"

// FunctionDeclaration is always a plain declaration: the expression,
// generator and async flags are encoded as false.
type FunctionDeclaration struct {
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
	Span   source.Span
}

func (n *FunctionDeclaration) Kind() NodeKind   { return NodeFunctionDeclaration }
func (n *FunctionDeclaration) Pos() source.Span { return n.Span }
func (*FunctionDeclaration) stmtNode()          {}
