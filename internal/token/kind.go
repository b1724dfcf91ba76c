package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a character no pattern matched.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// NumericLiteral is a decimal number with optional fraction and exponent.
	NumericLiteral
	// StringLiteral is a single- or double-quoted string.
	StringLiteral
	// BooleanLiteral is true or false.
	BooleanLiteral
	// NullLiteral is null.
	NullLiteral
	// Identifier is any non-reserved name.
	Identifier

	KwLet       // let
	KwVar       // var
	KwIf        // if
	KwElse      // else
	KwWhile     // while
	KwDo        // do
	KwFor       // for
	KwFunction  // function
	KwReturn    // return
	KwUndefined // undefined

	OpenBlock      // {
	CloseBlock     // }
	OpenParen      // (
	CloseParen     // )
	LineTerminator // ;
	Comma          // ,
	// MemberOperator covers '.', '[' and ']'; Text tells them apart.
	MemberOperator

	AddOperator            // + -
	MultiplicationOperator // * /
	SimpleAssignment       // =
	ComplexAssignment      // += -= *= /=
	EqualityOperator       // == !=
	RelationalOperator     // < > <= >=
	LogicalAnd             // &&
	LogicalOr              // ||
	LogicalNot             // !

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:                "undefined",
	EOF:                    "EOF",
	NumericLiteral:         "NumericLiteral",
	StringLiteral:          "StringLiteral",
	BooleanLiteral:         "BooleanLiteral",
	NullLiteral:            "NullLiteral",
	Identifier:             "Identifier",
	KwLet:                  "let",
	KwVar:                  "var",
	KwIf:                   "if",
	KwElse:                 "else",
	KwWhile:                "while",
	KwDo:                   "do",
	KwFor:                  "for",
	KwFunction:             "function",
	KwReturn:               "return",
	KwUndefined:            "undefined",
	OpenBlock:              "{",
	CloseBlock:             "}",
	OpenParen:              "(",
	CloseParen:             ")",
	LineTerminator:         ";",
	Comma:                  ",",
	MemberOperator:         "MemberOperator",
	AddOperator:            "AddOperator",
	MultiplicationOperator: "MultiplicationOperator",
	SimpleAssignment:       "=",
	ComplexAssignment:      "ComplexAssignment",
	EqualityOperator:       "EqualityOperator",
	RelationalOperator:     "RelationalOperator",
	LogicalAnd:             "&&",
	LogicalOr:              "||",
	LogicalNot:             "!",
}

// String renders punctuation by its spelling and everything else by name.
// Parse errors quote it as the expected kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Name returns the Go identifier of the kind, used by the token dump.
func (k Kind) Name() string {
	if k < kindCount {
		return goNames[k]
	}
	return "Kind(?)"
}

var goNames = [kindCount]string{
	"Invalid", "EOF", "NumericLiteral", "StringLiteral", "BooleanLiteral", "NullLiteral",
	"Identifier", "KwLet", "KwVar", "KwIf", "KwElse", "KwWhile", "KwDo", "KwFor",
	"KwFunction", "KwReturn", "KwUndefined", "OpenBlock", "CloseBlock", "OpenParen",
	"CloseParen", "LineTerminator", "Comma", "MemberOperator", "AddOperator",
	"MultiplicationOperator", "SimpleAssignment", "ComplexAssignment", "EqualityOperator",
	"RelationalOperator", "LogicalAnd", "LogicalOr", "LogicalNot",
}
