package ast

import (
	"bytes"
	"encoding/json"
	"math"
)

// Marshal encodes n as JSON. indent == "" produces a single line.
func Marshal(n Node, indent string) ([]byte, error) {
	if indent == "" {
		return encode(n)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Поля идут в порядке документа; "type" всегда первым.

func (n *Program) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind    `json:"type"`
		Body []Statement `json:"body"`
	}{n.Kind(), stmtList(n.Body)})
}

func (n *NumericLiteral) MarshalJSON() ([]byte, error) {
	var v any = n.Value
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		v = nil
	}
	return encode(struct {
		Type  NodeKind `json:"type"`
		Value any      `json:"value"`
	}{n.Kind(), v})
}

func (n *StringLiteral) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type  NodeKind `json:"type"`
		Value string   `json:"value"`
	}{n.Kind(), n.Value})
}

func (n *BooleanLiteral) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type  NodeKind `json:"type"`
		Value bool     `json:"value"`
	}{n.Kind(), n.Value})
}

func (n *NullLiteral) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type  NodeKind `json:"type"`
		Value any      `json:"value"`
	}{n.Kind(), nil})
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind `json:"type"`
		Name string   `json:"name"`
	}{n.Kind(), n.Name})
}

func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type     NodeKind   `json:"type"`
		Left     Expression `json:"left"`
		Operator string     `json:"operator"`
		Right    Expression `json:"right"`
	}{n.Kind(), n.Left, n.Operator, n.Right})
}

func (n *AssignmentExpression) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type     NodeKind   `json:"type"`
		Operator string     `json:"operator"`
		Left     Expression `json:"left"`
		Right    Expression `json:"right"`
	}{n.Kind(), n.Operator, n.Left, n.Right})
}

func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type     NodeKind   `json:"type"`
		Operator string     `json:"operator"`
		Argument Expression `json:"argument"`
	}{n.Kind(), n.Operator, n.Argument})
}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type     NodeKind   `json:"type"`
		Object   Expression `json:"object"`
		Property Expression `json:"property"`
		Computed bool       `json:"computed"`
		Optional bool       `json:"optional"`
	}{n.Kind(), n.Object, n.Property, n.Computed, false})
}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	args := n.Arguments
	if args == nil {
		args = []Expression{}
	}
	return encode(struct {
		Type      NodeKind     `json:"type"`
		Callee    Expression   `json:"callee"`
		Arguments []Expression `json:"arguments"`
		Optional  bool         `json:"optional"`
	}{n.Kind(), n.Callee, args, false})
}

func (n *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	params := n.Params
	if params == nil {
		params = []*Identifier{}
	}
	return encode(struct {
		Type       NodeKind        `json:"type"`
		ID         *Identifier     `json:"id"`
		Expression bool            `json:"expression"`
		Generator  bool            `json:"generator"`
		Async      bool            `json:"async"`
		Params     []*Identifier   `json:"params"`
		Body       *BlockStatement `json:"body"`
	}{n.Kind(), n.ID, false, false, false, params, n.Body})
}

func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	decls := n.Declarations
	if decls == nil {
		decls = []*VariableDeclarator{}
	}
	return encode(struct {
		Type         NodeKind              `json:"type"`
		Declarations []*VariableDeclarator `json:"declarations"`
		Kind         string                `json:"kind"`
	}{n.Kind(), decls, n.DeclKind})
}

func (n *VariableDeclarator) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind    `json:"type"`
		ID   *Identifier `json:"id"`
		Init Expression  `json:"init"`
	}{n.Kind(), n.ID, n.Init})
}

func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind    `json:"type"`
		Body []Statement `json:"body"`
	}{n.Kind(), stmtList(n.Body)})
}

func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type       NodeKind   `json:"type"`
		Expression Expression `json:"expression"`
	}{n.Kind(), n.Expression})
}

func (n *EmptyStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind `json:"type"`
	}{n.Kind()})
}

func (n *IfStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type       NodeKind   `json:"type"`
		Test       Expression `json:"test"`
		Consequent Statement  `json:"consequent"`
		Alternate  Statement  `json:"alternate"`
	}{n.Kind(), n.Test, n.Consequent, n.Alternate})
}

func (n *WhileStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind   `json:"type"`
		Test Expression `json:"test"`
		Body Statement  `json:"body"`
	}{n.Kind(), n.Test, n.Body})
}

func (n *DoWhileStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type NodeKind   `json:"type"`
		Body Statement  `json:"body"`
		Test Expression `json:"test"`
	}{n.Kind(), n.Body, n.Test})
}

func (n *ForStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type   NodeKind   `json:"type"`
		Init   ForInit    `json:"init"`
		Test   Expression `json:"test"`
		Update Expression `json:"update"`
		Body   Statement  `json:"body"`
	}{n.Kind(), n.Init, n.Test, n.Update, n.Body})
}

func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Type     NodeKind   `json:"type"`
		Argument Expression `json:"argument"`
	}{n.Kind(), n.Argument})
}

func stmtList(body []Statement) []Statement {
	if body == nil {
		return []Statement{}
	}
	return body
}

// encode is json.Marshal without HTML escaping, so operators like "<" and
// "&&" stay readable.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
