package parser

import (
	"errors"
	"strconv"

	"simpleparser/internal/ast"
	"simpleparser/internal/token"
)

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment is right-associative: a = b = c nests to the right.
func (p *Parser) assignment() (ast.Expression, error) {
	left, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if !p.lookahead.IsAssignment() {
		return left, nil
	}
	if !ast.IsAssignable(left) {
		return nil, invalidTargetError(left.Pos())
	}
	op := p.advance()
	right, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{
		Operator: op.Text,
		Left:     left,
		Right:    right,
		Span:     left.Pos().Cover(right.Pos()),
	}, nil
}

// binary разбирает уровень level из binaryLevels; все уровни левоассоциативны.
func (p *Parser) binary(level int) (ast.Expression, error) {
	operand := p.unary
	if level+1 < len(binaryLevels) {
		operand = func() (ast.Expression, error) { return p.binary(level + 1) }
	}

	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.at(binaryLevels[level]) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Operator: op.Text,
			Left:     left,
			Right:    right,
			Span:     left.Pos().Cover(right.Pos()),
		}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if !p.at(token.LogicalNot) && !p.at(token.AddOperator) {
		return p.callMember()
	}
	op := p.advance()
	arg, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{
		Operator: op.Text,
		Argument: arg,
		Span:     op.Span.Cover(arg.Pos()),
	}, nil
}

// callMember разбирает цепочку вызовов и обращений к членам:
// f(a)(b), a.b.c, s[i], f(x).y.
func (p *Parser) callMember() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.OpenParen):
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Arguments: args, Span: p.spanFrom(expr.Pos())}
		case p.atText(token.MemberOperator, "."):
			p.advance()
			tok, err := p.eat(token.Identifier)
			if err != nil {
				return nil, err
			}
			prop := &ast.Identifier{Name: tok.Text, Span: tok.Span}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Span: expr.Pos().Cover(tok.Span)}
		case p.atText(token.MemberOperator, "["):
			p.advance()
			prop, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.eatText(token.MemberOperator, "]"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Span: p.spanFrom(expr.Pos())}
		default:
			return expr, nil
		}
	}
}

// arguments — "(" [ Assignment { "," Assignment } ] ")".
func (p *Parser) arguments() ([]ast.Expression, error) {
	if _, err := p.eat(token.OpenParen); err != nil {
		return nil, err
	}
	args := []ast.Expression{}
	if !p.at(token.CloseParen) {
		for {
			arg, err := p.assignment()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.eat(token.CloseParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch p.lookahead.Kind {
	case token.Identifier, token.KwUndefined:
		tok := p.advance()
		return &ast.Identifier{Name: tok.Text, Span: tok.Span}, nil
	case token.OpenParen:
		return p.parenthesized()
	default:
		return p.literal()
	}
}

// parenthesized не создаёт отдельного узла: (a) даёт то же дерево, что a.
func (p *Parser) parenthesized() (ast.Expression, error) {
	if _, err := p.eat(token.OpenParen); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.CloseParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) literal() (ast.Expression, error) {
	tok := p.lookahead
	switch tok.Kind {
	case token.NumericLiteral:
		p.advance()
		// при ErrRange ParseFloat уже вернул ±Inf или 0, это допустимые значения
		v, err := strconv.ParseFloat(tok.Text, 64)
		if errors.Is(err, strconv.ErrSyntax) {
			return nil, unexpectedError(tok)
		}
		return &ast.NumericLiteral{Value: v, Span: tok.Span}, nil
	case token.StringLiteral:
		p.advance()
		return &ast.StringLiteral{Value: tok.Text, Span: tok.Span}, nil
	case token.BooleanLiteral:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Text == "true", Span: tok.Span}, nil
	case token.NullLiteral:
		p.advance()
		return &ast.NullLiteral{Span: tok.Span}, nil
	default:
		return nil, unexpectedError(tok)
	}
}
