package parser

import (
	"simpleparser/internal/ast"
	"simpleparser/internal/token"
)

// condition — "(" Expression ")" в заголовках if/while/do.
func (p *Parser) condition() (ast.Expression, error) {
	if _, err := p.eat(token.OpenParen); err != nil {
		return nil, err
	}
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.CloseParen); err != nil {
		return nil, err
	}
	return test, nil
}

// ifStatement: else всегда привязан к ближайшему if.
func (p *Parser) ifStatement() (ast.Statement, error) {
	kw := p.advance()
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	cons, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Test: test, Consequent: cons}
	if p.at(token.KwElse) {
		p.advance()
		alt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmt.Alternate = alt
	}
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	kw := p.advance()
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body, Span: p.spanFrom(kw.Span)}, nil
}

// doWhileStatement — "do" Statement "while" "(" Expression ")" ";".
func (p *Parser) doWhileStatement() (ast.Statement, error) {
	kw := p.advance()
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.KwWhile); err != nil {
		return nil, err
	}
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Body: body, Test: test, Span: p.spanFrom(kw.Span)}, nil
}

// forStatement — "for" "(" [Init] ";" [Test] ";" [Update] ")" Statement.
// Init — объявление let/var без своего ';' или выражение.
func (p *Parser) forStatement() (ast.Statement, error) {
	kw := p.advance()
	if _, err := p.eat(token.OpenParen); err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{}

	switch {
	case p.at(token.KwLet) || p.at(token.KwVar):
		decl, err := p.variableDeclaration()
		if err != nil {
			return nil, err
		}
		stmt.Init = decl
	case !p.at(token.LineTerminator):
		init, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}

	if !p.at(token.LineTerminator) {
		test, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}

	if !p.at(token.CloseParen) {
		update, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.eat(token.CloseParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, nil
}
