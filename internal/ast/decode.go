package ast

import (
	"encoding/json"
	"fmt"
)

// UnmarshalProgram rebuilds a tree from the JSON produced by Marshal.
// Spans are not part of the encoding and come back zero.
func UnmarshalProgram(data []byte) (*Program, error) {
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: expected Program, got %s", n.Kind())
	}
	return prog, nil
}

type fields map[string]json.RawMessage

func (f fields) str(key string) (string, error) {
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return "", fmt.Errorf("ast: field %q: %w", key, err)
	}
	return s, nil
}

func (f fields) boolean(key string) (bool, error) {
	var b bool
	if err := json.Unmarshal(f[key], &b); err != nil {
		return false, fmt.Errorf("ast: field %q: %w", key, err)
	}
	return b, nil
}

func (f fields) isNull(key string) bool {
	raw, ok := f[key]
	return !ok || string(raw) == "null"
}

func (f fields) list(key string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if f.isNull(key) {
		return nil, nil
	}
	if err := json.Unmarshal(f[key], &items); err != nil {
		return nil, fmt.Errorf("ast: field %q: %w", key, err)
	}
	return items, nil
}

func decodeNode(data []byte) (Node, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	var kind NodeKind
	if err := json.Unmarshal(f["type"], &kind); err != nil {
		return nil, err
	}

	switch kind {
	case NodeProgram:
		body, err := decodeStmts(f, "body")
		return &Program{Body: body}, err
	case NodeNumericLiteral:
		if f.isNull("value") {
			return &NumericLiteral{}, nil
		}
		var v float64
		if err := json.Unmarshal(f["value"], &v); err != nil {
			return nil, fmt.Errorf("ast: NumericLiteral value: %w", err)
		}
		return &NumericLiteral{Value: v}, nil
	case NodeStringLiteral:
		v, err := f.str("value")
		return &StringLiteral{Value: v}, err
	case NodeBooleanLiteral:
		v, err := f.boolean("value")
		return &BooleanLiteral{Value: v}, err
	case NodeNullLiteral:
		return &NullLiteral{}, nil
	case NodeIdentifier:
		name, err := f.str("name")
		return &Identifier{Name: name}, err
	case NodeBinaryExpression, NodeAssignmentExpression:
		op, err := f.str("operator")
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(f, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(f, "right")
		if err != nil {
			return nil, err
		}
		if kind == NodeAssignmentExpression {
			return &AssignmentExpression{Operator: op, Left: left, Right: right}, nil
		}
		return &BinaryExpression{Operator: op, Left: left, Right: right}, nil
	case NodeUnaryExpression:
		op, err := f.str("operator")
		if err != nil {
			return nil, err
		}
		arg, err := decodeExpr(f, "argument")
		return &UnaryExpression{Operator: op, Argument: arg}, err
	case NodeMemberExpression:
		obj, err := decodeExpr(f, "object")
		if err != nil {
			return nil, err
		}
		prop, err := decodeExpr(f, "property")
		if err != nil {
			return nil, err
		}
		computed, err := f.boolean("computed")
		return &MemberExpression{Object: obj, Property: prop, Computed: computed}, err
	case NodeCallExpression:
		callee, err := decodeExpr(f, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(f, "arguments")
		return &CallExpression{Callee: callee, Arguments: args}, err
	case NodeFunctionDeclaration:
		return decodeFunction(f)
	case NodeVariableDeclaration:
		return decodeVarDecl(f)
	case NodeVariableDeclarator:
		return decodeDeclarator(f)
	case NodeBlockStatement:
		body, err := decodeStmts(f, "body")
		if body == nil {
			body = []Statement{}
		}
		return &BlockStatement{Body: body}, err
	case NodeExpressionStatement:
		e, err := decodeExpr(f, "expression")
		return &ExpressionStatement{Expression: e}, err
	case NodeEmptyStatement:
		return &EmptyStatement{}, nil
	case NodeIfStatement:
		test, err := decodeExpr(f, "test")
		if err != nil {
			return nil, err
		}
		cons, err := decodeStmt(f, "consequent")
		if err != nil {
			return nil, err
		}
		alt, err := decodeOptStmt(f, "alternate")
		return &IfStatement{Test: test, Consequent: cons, Alternate: alt}, err
	case NodeWhileStatement, NodeDoWhileStatement:
		test, err := decodeExpr(f, "test")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(f, "body")
		if kind == NodeDoWhileStatement {
			return &DoWhileStatement{Body: body, Test: test}, err
		}
		return &WhileStatement{Test: test, Body: body}, err
	case NodeForStatement:
		return decodeFor(f)
	case NodeReturnStatement:
		arg, err := decodeOptExpr(f, "argument")
		return &ReturnStatement{Argument: arg}, err
	}
	return nil, fmt.Errorf("ast: unhandled node type %s", kind)
}

func decodeFunction(f fields) (Node, error) {
	id, err := decodeIdent(f["id"])
	if err != nil {
		return nil, err
	}
	raw, err := f.list("params")
	if err != nil {
		return nil, err
	}
	params := make([]*Identifier, 0, len(raw))
	for _, r := range raw {
		p, err := decodeIdent(r)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	n, err := decodeNode(f["body"])
	if err != nil {
		return nil, err
	}
	body, ok := n.(*BlockStatement)
	if !ok {
		return nil, fmt.Errorf("ast: function body must be BlockStatement, got %s", n.Kind())
	}
	return &FunctionDeclaration{ID: id, Params: params, Body: body}, nil
}

func decodeVarDecl(f fields) (*VariableDeclaration, error) {
	kind, err := f.str("kind")
	if err != nil {
		return nil, err
	}
	raw, err := f.list("declarations")
	if err != nil {
		return nil, err
	}
	decl := &VariableDeclaration{DeclKind: kind, Declarations: make([]*VariableDeclarator, 0, len(raw))}
	for _, r := range raw {
		var df fields
		if err := json.Unmarshal(r, &df); err != nil {
			return nil, fmt.Errorf("ast: %w", err)
		}
		d, err := decodeDeclarator(df)
		if err != nil {
			return nil, err
		}
		decl.Declarations = append(decl.Declarations, d)
	}
	return decl, nil
}

func decodeDeclarator(f fields) (*VariableDeclarator, error) {
	id, err := decodeIdent(f["id"])
	if err != nil {
		return nil, err
	}
	init, err := decodeOptExpr(f, "init")
	return &VariableDeclarator{ID: id, Init: init}, err
}

func decodeFor(f fields) (Node, error) {
	out := &ForStatement{}
	if !f.isNull("init") {
		n, err := decodeNode(f["init"])
		if err != nil {
			return nil, err
		}
		init, ok := n.(ForInit)
		if !ok {
			return nil, fmt.Errorf("ast: %s is not a for init", n.Kind())
		}
		out.Init = init
	}
	var err error
	if out.Test, err = decodeOptExpr(f, "test"); err != nil {
		return nil, err
	}
	if out.Update, err = decodeOptExpr(f, "update"); err != nil {
		return nil, err
	}
	out.Body, err = decodeStmt(f, "body")
	return out, err
}

func decodeIdent(raw json.RawMessage) (*Identifier, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	id, ok := n.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("ast: expected Identifier, got %s", n.Kind())
	}
	return id, nil
}

func decodeExpr(f fields, key string) (Expression, error) {
	if f.isNull(key) {
		return nil, fmt.Errorf("ast: field %q must not be null", key)
	}
	return asExpr(f[key])
}

func decodeOptExpr(f fields, key string) (Expression, error) {
	if f.isNull(key) {
		return nil, nil
	}
	return asExpr(f[key])
}

func asExpr(raw json.RawMessage) (Expression, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	e, ok := n.(Expression)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not an expression", n.Kind())
	}
	return e, nil
}

func decodeStmt(f fields, key string) (Statement, error) {
	if f.isNull(key) {
		return nil, fmt.Errorf("ast: field %q must not be null", key)
	}
	return asStmt(f[key])
}

func decodeOptStmt(f fields, key string) (Statement, error) {
	if f.isNull(key) {
		return nil, nil
	}
	return asStmt(f[key])
}

func asStmt(raw json.RawMessage) (Statement, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	s, ok := n.(Statement)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not a statement", n.Kind())
	}
	return s, nil
}

func decodeStmts(f fields, key string) ([]Statement, error) {
	raw, err := f.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]Statement, 0, len(raw))
	for _, r := range raw {
		s, err := asStmt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeExprs(f fields, key string) ([]Expression, error) {
	raw, err := f.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]Expression, 0, len(raw))
	for _, r := range raw {
		e, err := asExpr(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
