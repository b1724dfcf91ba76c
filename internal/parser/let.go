package parser

import (
	"simpleparser/internal/ast"
	"simpleparser/internal/token"
)

// variableStatement — объявление с обязательным ';'.
func (p *Parser) variableStatement() (ast.Statement, error) {
	decl, err := p.variableDeclaration()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(decl.Span)
	return decl, nil
}

// variableDeclaration — ("let" | "var") Declarator { "," Declarator }, без ';'.
// Используется и в заголовке for.
func (p *Parser) variableDeclaration() (*ast.VariableDeclaration, error) {
	kw := p.advance()
	decl := &ast.VariableDeclaration{DeclKind: kw.Text}
	for {
		d, err := p.declarator()
		if err != nil {
			return nil, err
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	decl.Span = p.spanFrom(kw.Span)
	return decl, nil
}

// declarator — Identifier [ "=" Assignment ].
func (p *Parser) declarator() (*ast.VariableDeclarator, error) {
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}
	d := &ast.VariableDeclarator{ID: id}
	if p.at(token.SimpleAssignment) {
		p.advance()
		init, err := p.assignment()
		if err != nil {
			return nil, err
		}
		d.Init = init
	}
	d.Span = p.spanFrom(id.Span)
	return d, nil
}

func (p *Parser) identifier() (*ast.Identifier, error) {
	tok, err := p.eat(token.Identifier)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: tok.Text, Span: tok.Span}, nil
}
