package ast

import "fmt"

type NodeKind uint8

const (
	NodeProgram NodeKind = iota
	NodeNumericLiteral
	NodeStringLiteral
	NodeBooleanLiteral
	NodeNullLiteral
	NodeIdentifier
	NodeBinaryExpression
	NodeUnaryExpression
	NodeAssignmentExpression
	NodeMemberExpression
	NodeCallExpression
	NodeFunctionDeclaration
	NodeVariableDeclaration
	NodeVariableDeclarator
	NodeBlockStatement
	NodeExpressionStatement
	NodeEmptyStatement
	NodeIfStatement
	NodeWhileStatement
	NodeDoWhileStatement
	NodeForStatement
	NodeReturnStatement

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	"Program",
	"NumericLiteral",
	"StringLiteral",
	"BooleanLiteral",
	"NullLiteral",
	"Identifier",
	"BinaryExpression",
	"UnaryExpression",
	"AssignmentExpression",
	"MemberExpression",
	"CallExpression",
	"FunctionDeclaration",
	"VariableDeclaration",
	"VariableDeclarator",
	"BlockStatement",
	"ExpressionStatement",
	"EmptyStatement",
	"IfStatement",
	"WhileStatement",
	"DoWhileStatement",
	"ForStatement",
	"ReturnStatement",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

func (k NodeKind) MarshalText() ([]byte, error) {
	if k >= nodeKindCount {
		return nil, fmt.Errorf("ast: invalid node kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(b []byte) error {
	kind, ok := ParseNodeKind(string(b))
	if !ok {
		return fmt.Errorf("ast: unknown node type %q", b)
	}
	*k = kind
	return nil
}

// ParseNodeKind maps a JSON "type" tag back to its kind.
func ParseNodeKind(s string) (NodeKind, bool) {
	for i, name := range nodeKindNames {
		if name == s {
			return NodeKind(i), true // #nosec G115 -- i < nodeKindCount
		}
	}
	return 0, false
}
