package parser

import "simpleparser/internal/token"

// binaryLevels — левоассоциативные уровни от низшего приоритета к высшему.
// Уровень i разбирает операнды уровнем i+1, последний — унарным выражением.
var binaryLevels = [...]token.Kind{
	token.LogicalOr,
	token.LogicalAnd,
	token.EqualityOperator,
	token.RelationalOperator,
	token.AddOperator,
	token.MultiplicationOperator,
}

// Precedence returns the binary level of k (1 = loosest) or 0 when k is not
// a binary operator. Printers use it to decide where parentheses go.
func Precedence(k token.Kind) int {
	for i, lk := range binaryLevels {
		if lk == k {
			return i + 1
		}
	}
	return 0
}

// OperatorKind maps a binary operator spelling back to its token kind.
func OperatorKind(op string) (token.Kind, bool) {
	switch op {
	case "||":
		return token.LogicalOr, true
	case "&&":
		return token.LogicalAnd, true
	case "==", "!=":
		return token.EqualityOperator, true
	case "<", ">", "<=", ">=":
		return token.RelationalOperator, true
	case "+", "-":
		return token.AddOperator, true
	case "*", "/":
		return token.MultiplicationOperator, true
	default:
		return token.Invalid, false
	}
}
