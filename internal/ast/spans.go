package ast

import (
	"fmt"

	"simpleparser/internal/source"
)

// SpanRange is a span without its file, as stored by the parse cache.
type SpanRange struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

// CollectSpans returns the span of every node under n in Inspect order.
func CollectSpans(n Node) []SpanRange {
	var out []SpanRange
	Inspect(n, func(c Node) bool {
		if c != nil {
			sp := c.Pos()
			out = append(out, SpanRange{Start: sp.Start, End: sp.End})
		}
		return true
	})
	return out
}

// RestoreSpans assigns spans collected by CollectSpans back to a tree of the
// same shape, typically one rebuilt by UnmarshalProgram.
func RestoreSpans(n Node, file source.FileID, spans []SpanRange) error {
	i := 0
	var err error
	Inspect(n, func(c Node) bool {
		if c == nil || err != nil {
			return false
		}
		if i >= len(spans) {
			err = fmt.Errorf("ast: span list too short: %d entries", len(spans))
			return false
		}
		if ref := spanRef(c); ref != nil {
			*ref = source.Span{File: file, Start: spans[i].Start, End: spans[i].End}
		}
		i++
		return true
	})
	if err == nil && i != len(spans) {
		err = fmt.Errorf("ast: span list has %d entries, tree has %d nodes", len(spans), i)
	}
	return err
}

func spanRef(n Node) *source.Span {
	switch n := n.(type) {
	case *Program:
		return &n.Span
	case *NumericLiteral:
		return &n.Span
	case *StringLiteral:
		return &n.Span
	case *BooleanLiteral:
		return &n.Span
	case *NullLiteral:
		return &n.Span
	case *Identifier:
		return &n.Span
	case *BinaryExpression:
		return &n.Span
	case *UnaryExpression:
		return &n.Span
	case *AssignmentExpression:
		return &n.Span
	case *MemberExpression:
		return &n.Span
	case *CallExpression:
		return &n.Span
	case *FunctionDeclaration:
		return &n.Span
	case *VariableDeclaration:
		return &n.Span
	case *VariableDeclarator:
		return &n.Span
	case *BlockStatement:
		return &n.Span
	case *ExpressionStatement:
		return &n.Span
	case *EmptyStatement:
		return &n.Span
	case *IfStatement:
		return &n.Span
	case *WhileStatement:
		return &n.Span
	case *DoWhileStatement:
		return &n.Span
	case *ForStatement:
		return &n.Span
	case *ReturnStatement:
		return &n.Span
	}
	return nil
}
