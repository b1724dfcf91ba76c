package lsp

import (
	"fmt"
	"strconv"
	"strings"

	"simpleparser/internal/ast"
	"simpleparser/internal/parser"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, buildHover(snap, params.Position))
}

func buildHover(snap *snapshot, pos position) *hover {
	offset := offsetForPositionInFile(snap.file, pos)
	node, parents := snap.nodeAt(offset)
	if node == nil || node.Kind() == ast.NodeProgram {
		return nil
	}
	var lines []string
	switch n := node.(type) {
	case *ast.Identifier:
		if isPropertyName(n, parents) {
			lines = append(lines, fmt.Sprintf("property `%s`", n.Name))
			break
		}
		if b, ok := resolve(collectBindings(snap.program), n); ok {
			lines = append(lines, "```javascript\n"+describeBinding(b)+"\n```")
			line := positionForOffsetInFile(snap.file, b.id.Span.Start).Line + 1
			lines = append(lines, fmt.Sprintf("%s, declared on line %d", b.kind, line))
		} else {
			lines = append(lines, fmt.Sprintf("identifier `%s` (not declared in this file)", n.Name))
		}
	case *ast.NumericLiteral:
		lines = append(lines, "number `"+strconv.FormatFloat(n.Value, 'g', -1, 64)+"`")
	case *ast.StringLiteral:
		lines = append(lines, fmt.Sprintf("string of %d bytes", len(n.Value)))
	default:
		lines = append(lines, "**"+node.Kind().String()+"**")
		if op := operatorOf(node); op != "" {
			lines = append(lines, "operator `"+op+"`")
			if kind, ok := parser.OperatorKind(op); ok {
				if _, isBinary := node.(*ast.BinaryExpression); isBinary {
					lines = append(lines, fmt.Sprintf("precedence level %d", parser.Precedence(kind)))
				}
			}
		}
	}
	rng := rangeForSpan(snap.file, node.Pos())
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: strings.Join(lines, "\n\n")},
		Range:    &rng,
	}
}

func describeBinding(b binding) string {
	switch d := b.decl.(type) {
	case *ast.FunctionDeclaration:
		if b.kind == bindParam {
			return fmt.Sprintf("%s /* parameter of %s */", b.name, functionName(d))
		}
		params := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			params = append(params, p.Name)
		}
		return fmt.Sprintf("function %s(%s)", b.name, strings.Join(params, ", "))
	case *ast.VariableDeclarator:
		if d.Init == nil {
			return b.kind.String() + " " + b.name
		}
		return fmt.Sprintf("%s %s = %s", b.kind, b.name, summarize(d.Init))
	}
	return b.name
}

func functionName(fn *ast.FunctionDeclaration) string {
	if fn.ID == nil {
		return "function"
	}
	return fn.ID.Name
}

// summarize renders short initializers verbatim and only the kind of the rest.
func summarize(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NumericLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.StringLiteral:
		return strconv.Quote(n.Value)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *ast.NullLiteral:
		return "null"
	case *ast.Identifier:
		return n.Name
	}
	return "/* " + e.Kind().String() + " */"
}

func operatorOf(n ast.Node) string {
	switch n := n.(type) {
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.UnaryExpression:
		return n.Operator
	case *ast.AssignmentExpression:
		return n.Operator
	case *ast.VariableDeclaration:
		return n.DeclKind
	}
	return ""
}

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params definitionParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, []location{})
	}
	return s.sendResponse(msg.ID, buildDefinition(snap, params.Position))
}

func buildDefinition(snap *snapshot, pos position) []location {
	offset := offsetForPositionInFile(snap.file, pos)
	node, parents := snap.nodeAt(offset)
	ident, ok := node.(*ast.Identifier)
	if !ok || isPropertyName(ident, parents) {
		return []location{}
	}
	b, ok := resolve(collectBindings(snap.program), ident)
	if !ok {
		return []location{}
	}
	return []location{{URI: snap.uri, Range: rangeForSpan(snap.file, b.id.Span)}}
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil || snap.program == nil {
		return s.sendResponse(msg.ID, []documentSymbol{})
	}
	return s.sendResponse(msg.ID, buildDocumentSymbols(snap))
}

func buildDocumentSymbols(snap *snapshot) []documentSymbol {
	out := []documentSymbol{}
	if snap.program == nil {
		return out
	}
	for _, st := range snap.program.Body {
		out = appendSymbols(out, snap, st)
	}
	return out
}

// appendSymbols adds the declarations found under n. Functions nest their own
// declarations; blocks and control flow are flattened into the enclosing level.
func appendSymbols(out []documentSymbol, snap *snapshot, n ast.Node) []documentSymbol {
	switch n := n.(type) {
	case *ast.FunctionDeclaration:
		sym := documentSymbol{
			Name:           functionName(n),
			Detail:         describeFunctionParams(n),
			Kind:           symbolKindFunction,
			Range:          rangeForSpan(snap.file, n.Span),
			SelectionRange: rangeForSpan(snap.file, n.Span),
		}
		if n.ID != nil {
			sym.SelectionRange = rangeForSpan(snap.file, n.ID.Span)
		}
		if n.Body != nil {
			for _, st := range n.Body.Body {
				sym.Children = appendSymbols(sym.Children, snap, st)
			}
		}
		return append(out, sym)
	case *ast.VariableDeclaration:
		for _, d := range n.Declarations {
			if d.ID == nil {
				continue
			}
			out = append(out, documentSymbol{
				Name:           d.ID.Name,
				Detail:         n.DeclKind,
				Kind:           symbolKindVariable,
				Range:          rangeForSpan(snap.file, d.Span),
				SelectionRange: rangeForSpan(snap.file, d.ID.Span),
			})
		}
		return out
	}
	for _, c := range ast.Children(n) {
		out = appendSymbols(out, snap, c)
	}
	return out
}

func describeFunctionParams(fn *ast.FunctionDeclaration) string {
	names := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		names = append(names, p.Name)
	}
	return "(" + strings.Join(names, ", ") + ")"
}
