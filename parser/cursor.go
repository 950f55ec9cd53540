package parser

import (
	"github.com/go9cc/nanocc/diagnostics"
	"github.com/go9cc/nanocc/token"
)

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEnd() bool {
	return p.cur().Kind == token.END
}

// consume advances past a RESERVED token matching op and reports true,
// or leaves the cursor untouched and reports false.
func (p *Parser) consume(op string) bool {
	if !p.cur().Is(p.src, op) {
		return false
	}
	p.pos++
	return true
}

// consumeKind advances past a token of the given keyword kind and
// reports true, or leaves the cursor untouched and reports false.
func (p *Parser) consumeKind(kind token.Kind) bool {
	if p.cur().Kind != kind {
		return false
	}
	p.pos++
	return true
}

// consumeIdent advances past an IDENT token and returns it, or leaves
// the cursor untouched and reports false.
func (p *Parser) consumeIdent() (token.Token, bool) {
	if p.cur().Kind != token.IDENT {
		return token.Token{}, false
	}
	tok := p.cur()
	p.pos++
	return tok, true
}

// expect advances past a RESERVED token matching op, or reports a
// SyntaxError at the current cursor position.
func (p *Parser) expect(op string) error {
	if !p.consume(op) {
		return p.errHere(diagnostics.SyntaxError, "expected '%s'", op)
	}
	return nil
}

// expectNumber advances past a NUMBER token and returns its value, or
// reports a SyntaxError at the current cursor position.
func (p *Parser) expectNumber() (int, error) {
	if p.cur().Kind != token.NUMBER {
		return 0, p.errHere(diagnostics.SyntaxError, "expected a number")
	}
	val := p.cur().Value
	p.pos++
	return val, nil
}

// errHere builds a diagnostics error anchored at the current token.
func (p *Parser) errHere(kind diagnostics.Kind, format string, args ...interface{}) error {
	return p.ctx.Errorf(kind, p.cur().Start, nil, format, args...)
}
