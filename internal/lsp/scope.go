package lsp

import (
	"simpleparser/internal/ast"
	"simpleparser/internal/source"
)

type bindingKind uint8

const (
	bindLet bindingKind = iota
	bindVar
	bindFunction
	bindParam
)

func (k bindingKind) String() string {
	switch k {
	case bindVar:
		return "var"
	case bindFunction:
		return "function"
	case bindParam:
		return "parameter"
	default:
		return "let"
	}
}

// binding — объявленное имя и область, где оно видно
type binding struct {
	name  string
	kind  bindingKind
	id    *ast.Identifier
	decl  ast.Node // *ast.VariableDeclarator or *ast.FunctionDeclaration
	scope source.Span
}

// collectBindings records every declared name. let-style declarations are
// scoped to the enclosing block, var to the enclosing function, parameters to
// their function.
func collectBindings(prog *ast.Program) []binding {
	if prog == nil {
		return nil
	}
	var out []binding
	var visit func(n ast.Node, block, fn source.Span)
	visit = func(n ast.Node, block, fn source.Span) {
		switch n := n.(type) {
		case *ast.BlockStatement:
			for _, st := range n.Body {
				visit(st, n.Span, fn)
			}
			return
		case *ast.ForStatement:
			for _, c := range ast.Children(n) {
				visit(c, n.Span, fn)
			}
			return
		case *ast.FunctionDeclaration:
			if n.ID != nil {
				out = append(out, binding{name: n.ID.Name, kind: bindFunction, id: n.ID, decl: n, scope: block})
			}
			for _, p := range n.Params {
				out = append(out, binding{name: p.Name, kind: bindParam, id: p, decl: n, scope: n.Span})
			}
			if n.Body != nil {
				for _, st := range n.Body.Body {
					visit(st, n.Body.Span, n.Span)
				}
			}
			return
		case *ast.VariableDeclaration:
			kind, scope := bindLet, block
			if n.DeclKind == "var" {
				kind, scope = bindVar, fn
			}
			for _, d := range n.Declarations {
				if d.ID != nil {
					out = append(out, binding{name: d.ID.Name, kind: kind, id: d.ID, decl: d, scope: scope})
				}
				if d.Init != nil {
					visit(d.Init, block, fn)
				}
			}
			return
		}
		for _, c := range ast.Children(n) {
			visit(c, block, fn)
		}
	}
	for _, st := range prog.Body {
		visit(st, prog.Span, prog.Span)
	}
	return out
}

// resolve finds the binding an identifier use refers to: the innermost scope
// wins, and within one scope the last declaration before the use.
func resolve(bindings []binding, ident *ast.Identifier) (binding, bool) {
	var best binding
	found := false
	at := ident.Span.Start
	for _, b := range bindings {
		if b.name != ident.Name || !b.scope.Contains(ident.Span) {
			continue
		}
		if !found {
			best, found = b, true
			continue
		}
		switch {
		case b.scope.Len() < best.scope.Len():
			best = b
		case b.scope.Len() == best.scope.Len() && declaredBefore(b, best, at):
			best = b
		}
	}
	return best, found
}

// declaredBefore reports whether a is a better match than b for a use at
// offset at: declarations before the use beat later ones, the closest wins.
func declaredBefore(a, b binding, at uint32) bool {
	aBefore, bBefore := a.id.Span.Start <= at, b.id.Span.Start <= at
	if aBefore != bBefore {
		return aBefore
	}
	if aBefore {
		return a.id.Span.Start > b.id.Span.Start
	}
	return a.id.Span.Start < b.id.Span.Start
}

// isPropertyName reports whether ident is the name after '.' in a member
// access, which never refers to a binding.
func isPropertyName(ident ast.Node, parents []ast.Node) bool {
	if len(parents) == 0 {
		return false
	}
	m, ok := parents[len(parents)-1].(*ast.MemberExpression)
	return ok && !m.Computed && m.Property == ident
}
