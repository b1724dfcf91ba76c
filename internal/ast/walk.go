package ast

// Inspect traverses the tree rooted at n depth-first in source order. It
// calls fn(n); if that returns true, Inspect visits each child and then
// calls fn(nil), mirroring go/ast.Inspect.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
	fn(nil)
}

// Children returns the direct children of n in source order, skipping
// absent optional fields.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *FunctionDeclaration:
		if n.ID != nil {
			add(n.ID)
		}
		for _, p := range n.Params {
			add(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		if n.ID != nil {
			add(n.ID)
		}
		add(n.Init)
	case *ExpressionStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	}
	return out
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(x Node) bool {
		if x != nil {
			total++
		}
		return true
	})
	return total
}
