package ast

import "simpleparser/internal/source"

type (
	NumericLiteral struct {
		Value float64
		Span  source.Span
	}

	StringLiteral struct {
		Value string // as written, escapes are not processed
		Span  source.Span
	}

	BooleanLiteral struct {
		Value bool
		Span  source.Span
	}

	NullLiteral struct {
		Span source.Span
	}

	Identifier struct {
		Name string
		Span source.Span
	}

	// BinaryExpression also covers && and ||.
	BinaryExpression struct {
		Operator string
		Left     Expression
		Right    Expression
		Span     source.Span
	}

	UnaryExpression struct {
		Operator string // ! + -
		Argument Expression
		Span     source.Span
	}

	// AssignmentExpression has an Identifier or MemberExpression on the left.
	AssignmentExpression struct {
		Operator string // = += -= *= /=
		Left     Expression
		Right    Expression
		Span     source.Span
	}

	// MemberExpression is obj.prop (Computed false) or obj[expr] (Computed true).
	MemberExpression struct {
		Object   Expression
		Property Expression
		Computed bool
		Span     source.Span
	}

	CallExpression struct {
		Callee    Expression
		Arguments []Expression
		Span      source.Span
	}
)

func (n *NumericLiteral) Kind() NodeKind       { return NodeNumericLiteral }
func (n *StringLiteral) Kind() NodeKind        { return NodeStringLiteral }
func (n *BooleanLiteral) Kind() NodeKind       { return NodeBooleanLiteral }
func (n *NullLiteral) Kind() NodeKind          { return NodeNullLiteral }
func (n *Identifier) Kind() NodeKind           { return NodeIdentifier }
func (n *BinaryExpression) Kind() NodeKind     { return NodeBinaryExpression }
func (n *UnaryExpression) Kind() NodeKind      { return NodeUnaryExpression }
func (n *AssignmentExpression) Kind() NodeKind { return NodeAssignmentExpression }
func (n *MemberExpression) Kind() NodeKind     { return NodeMemberExpression }
func (n *CallExpression) Kind() NodeKind       { return NodeCallExpression }

func (n *NumericLiteral) Pos() source.Span       { return n.Span }
func (n *StringLiteral) Pos() source.Span        { return n.Span }
func (n *BooleanLiteral) Pos() source.Span       { return n.Span }
func (n *NullLiteral) Pos() source.Span          { return n.Span }
func (n *Identifier) Pos() source.Span           { return n.Span }
func (n *BinaryExpression) Pos() source.Span     { return n.Span }
func (n *UnaryExpression) Pos() source.Span      { return n.Span }
func (n *AssignmentExpression) Pos() source.Span { return n.Span }
func (n *MemberExpression) Pos() source.Span     { return n.Span }
func (n *CallExpression) Pos() source.Span       { return n.Span }

func (*NumericLiteral) exprNode()       {}
func (*StringLiteral) exprNode()        {}
func (*BooleanLiteral) exprNode()       {}
func (*NullLiteral) exprNode()          {}
func (*Identifier) exprNode()           {}
func (*BinaryExpression) exprNode()     {}
func (*UnaryExpression) exprNode()      {}
func (*AssignmentExpression) exprNode() {}
func (*MemberExpression) exprNode()     {}
func (*CallExpression) exprNode()       {}

func (*NumericLiteral) forInit()       {}
func (*StringLiteral) forInit()        {}
func (*BooleanLiteral) forInit()       {}
func (*NullLiteral) forInit()          {}
func (*Identifier) forInit()           {}
func (*BinaryExpression) forInit()     {}
func (*UnaryExpression) forInit()      {}
func (*AssignmentExpression) forInit() {}
func (*MemberExpression) forInit()     {}
func (*CallExpression) forInit()       {}

// IsAssignable reports whether e may appear on the left of an assignment.
func IsAssignable(e Expression) bool {
	switch e.(type) {
	case *Identifier, *MemberExpression:
		return true
	default:
		return false
	}
}
