package ast

import "simpleparser/internal/source"

type (
	BlockStatement struct {
		Body []Statement
		Span source.Span
	}

	ExpressionStatement struct {
		Expression Expression
		Span       source.Span
	}

	EmptyStatement struct {
		Span source.Span
	}

	IfStatement struct {
		Test       Expression
		Consequent Statement
		Alternate  Statement // nil without else
		Span       source.Span
	}

	WhileStatement struct {
		Test Expression
		Body Statement
		Span source.Span
	}

	DoWhileStatement struct {
		Body Statement
		Test Expression
		Span source.Span
	}

	// ForStatement header parts are nil when omitted.
	ForStatement struct {
		Init   ForInit
		Test   Expression
		Update Expression
		Body   Statement
		Span   source.Span
	}

	ReturnStatement struct {
		Argument Expression // nil for a bare return
		Span     source.Span
	}
)

func (n *BlockStatement) Kind() NodeKind      { return NodeBlockStatement }
func (n *ExpressionStatement) Kind() NodeKind { return NodeExpressionStatement }
func (n *EmptyStatement) Kind() NodeKind      { return NodeEmptyStatement }
func (n *IfStatement) Kind() NodeKind         { return NodeIfStatement }
func (n *WhileStatement) Kind() NodeKind      { return NodeWhileStatement }
func (n *DoWhileStatement) Kind() NodeKind    { return NodeDoWhileStatement }
func (n *ForStatement) Kind() NodeKind        { return NodeForStatement }
func (n *ReturnStatement) Kind() NodeKind     { return NodeReturnStatement }

func (n *BlockStatement) Pos() source.Span      { return n.Span }
func (n *ExpressionStatement) Pos() source.Span { return n.Span }
func (n *EmptyStatement) Pos() source.Span      { return n.Span }
func (n *IfStatement) Pos() source.Span         { return n.Span }
func (n *WhileStatement) Pos() source.Span      { return n.Span }
func (n *DoWhileStatement) Pos() source.Span    { return n.Span }
func (n *ForStatement) Pos() source.Span        { return n.Span }
func (n *ReturnStatement) Pos() source.Span     { return n.Span }

func (*BlockStatement) stmtNode()      {}
func (*ExpressionStatement) stmtNode() {}
func (*EmptyStatement) stmtNode()      {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*DoWhileStatement) stmtNode()    {}
func (*ForStatement) stmtNode()        {}
func (*ReturnStatement) stmtNode()     {}
