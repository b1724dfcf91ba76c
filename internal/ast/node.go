package ast

import "simpleparser/internal/source"

// Node is implemented by every tree node.
type Node interface {
	Kind() NodeKind
	Pos() source.Span
}

// Statement is a node allowed in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a node allowed in expression position.
type Expression interface {
	Node
	ForInit
	exprNode()
}

// ForInit is the init clause of a for header: a declaration or an expression.
type ForInit interface {
	Node
	forInit()
}

// Program is the root node.
type Program struct {
	Body []Statement
	Span source.Span
}

func (n *Program) Kind() NodeKind   { return NodeProgram }
func (n *Program) Pos() source.Span { return n.Span }
