package token

import (
	"simpleparser/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token starts a literal expression.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumericLiteral, StringLiteral, BooleanLiteral, NullLiteral:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word other than a literal.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwLet && t.Kind <= KwUndefined
}

// IsOperator reports whether the token is an operator usable between operands.
func (t Token) IsOperator() bool {
	return t.Kind >= AddOperator && t.Kind <= LogicalNot
}

// IsAssignment reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignment() bool {
	return t.Kind == SimpleAssignment || t.Kind == ComplexAssignment
}

// Is reports whether the token has kind k and, when text is non-empty, that exact text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && (text == "" || t.Text == text)
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Identifier }
