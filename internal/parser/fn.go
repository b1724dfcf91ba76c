package parser

import (
	"simpleparser/internal/ast"
	"simpleparser/internal/token"
)

// functionDeclaration — "function" Identifier "(" [Params] ")" Block.
func (p *Parser) functionDeclaration() (ast.Statement, error) {
	kw := p.advance()
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}
	params, err := p.params()
	if err != nil {
		return nil, err
	}
	body, err := p.blockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{ID: id, Params: params, Body: body, Span: p.spanFrom(kw.Span)}, nil
}

// params — "(" [ Identifier { "," Identifier } ] ")".
func (p *Parser) params() ([]*ast.Identifier, error) {
	if _, err := p.eat(token.OpenParen); err != nil {
		return nil, err
	}
	params := []*ast.Identifier{}
	if !p.at(token.CloseParen) {
		for {
			id, err := p.identifier()
			if err != nil {
				return nil, err
			}
			params = append(params, id)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.eat(token.CloseParen); err != nil {
		return nil, err
	}
	return params, nil
}
