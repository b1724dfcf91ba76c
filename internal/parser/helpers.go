package parser

import (
	"simpleparser/internal/source"
	"simpleparser/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lookahead.Kind == k
}

// atText — для MemberOperator, где вид токена один, а текст разный.
func (p *Parser) atText(k token.Kind, text string) bool {
	return p.lookahead.Is(k, text)
}

// advance — съедает lookahead, подтягивает следующий токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lookahead
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.consumed++
	}
	p.lookahead = p.lx.Next()
	return tok
}

// eat consumes a token of kind k or fails with the kind-mismatch error.
func (p *Parser) eat(k token.Kind) (token.Token, error) {
	if p.lookahead.Kind != k {
		return token.Token{}, expectedError(k.String(), k, p.lookahead, p.lastSpan)
	}
	return p.advance(), nil
}

// eatText is eat for kinds that share several spellings.
func (p *Parser) eatText(k token.Kind, text string) (token.Token, error) {
	if !p.lookahead.Is(k, text) {
		return token.Token{}, expectedError(text, k, p.lookahead, p.lastSpan)
	}
	return p.advance(), nil
}

// spanFrom — от начала start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
