package parser

import (
	"simpleparser/internal/ast"
	"simpleparser/internal/token"
)

// statementList разбирает операторы до токена stop (не съедая его).
// EOF всегда останавливает цикл: незакрытый блок ловит eat('}').
func (p *Parser) statementList(stop token.Kind) ([]ast.Statement, error) {
	list := []ast.Statement{}
	for !p.at(stop) && !p.at(token.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
	return list, nil
}

// statement выбирает продукцию по одному токену lookahead.
func (p *Parser) statement() (ast.Statement, error) {
	switch p.lookahead.Kind {
	case token.OpenBlock:
		return p.blockStatement()
	case token.LineTerminator:
		tok := p.advance()
		return &ast.EmptyStatement{Span: tok.Span}, nil
	case token.KwLet, token.KwVar:
		return p.variableStatement()
	case token.KwIf:
		return p.ifStatement()
	case token.KwWhile:
		return p.whileStatement()
	case token.KwDo:
		return p.doWhileStatement()
	case token.KwFor:
		return p.forStatement()
	case token.KwFunction:
		return p.functionDeclaration()
	case token.KwReturn:
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) blockStatement() (*ast.BlockStatement, error) {
	open, err := p.eat(token.OpenBlock)
	if err != nil {
		return nil, err
	}
	body, err := p.statementList(token.CloseBlock)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.CloseBlock); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: body, Span: p.spanFrom(open.Span)}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr, Span: p.spanFrom(expr.Pos())}, nil
}

// returnStatement — "return" [ Expression ] ";".
func (p *Parser) returnStatement() (ast.Statement, error) {
	kw := p.advance()
	stmt := &ast.ReturnStatement{}
	if !p.at(token.LineTerminator) {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Argument = arg
	}
	if _, err := p.eat(token.LineTerminator); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, nil
}
