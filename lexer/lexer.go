// Package lexer converts a source buffer into an ordered, END-terminated
// sequence of tokens.
package lexer

import (
	"github.com/go9cc/nanocc/diagnostics"
	"github.com/go9cc/nanocc/token"
)

// maxIdentLen is the longest lexeme an identifier may have.
const maxIdentLen = 255

// twoCharOps lists the two-character operators, checked before the
// single-character punctuators so that e.g. "==" is never split into
// two "=" tokens.
var twoCharOps = []string{"==", "!=", "<=", ">="}

const oneCharOps = "+-*/()<>=;{},"

// Lexer holds scanning state over an installed source buffer.
type Lexer struct {
	ctx *diagnostics.Context
	src string
	pos int
}

// New returns a Lexer reading from ctx's installed source buffer.
func New(ctx *diagnostics.Context) *Lexer {
	return &Lexer{ctx: ctx, src: ctx.Source()}
}

// Tokenize scans the whole buffer and returns its END-terminated token
// sequence, or the first lexical error encountered.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.END {
			return tokens, nil
		}
	}
}

// next scans and returns the single token starting at the current
// cursor position, applying spec.md §4.1's priority order.
func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.src) {
		return token.Token{Kind: token.END, Start: l.pos}, nil
	}

	start := l.pos

	if isAlpha(l.src[l.pos]) {
		n := l.scanIdentifier()
		lexeme := l.src[start : start+n]
		l.pos += n
		if kind, ok := token.LookupKeyword(lexeme); ok {
			return token.Token{Kind: kind, Start: start, Len: n}, nil
		}
		return token.Token{Kind: token.IDENT, Start: start, Len: n}, nil
	}

	for _, op := range twoCharOps {
		if l.hasPrefix(op) {
			l.pos += 2
			return token.Token{Kind: token.RESERVED, Start: start, Len: 2}, nil
		}
	}

	if indexByte(oneCharOps, l.src[l.pos]) {
		l.pos++
		return token.Token{Kind: token.RESERVED, Start: start, Len: 1}, nil
	}

	if isDigit(l.src[l.pos]) {
		val, n := l.scanNumber()
		l.pos += n
		return token.Token{Kind: token.NUMBER, Start: start, Len: n, Value: val}, nil
	}

	return token.Token{}, l.ctx.Errorf(diagnostics.LexError, l.pos, nil,
		"invalid token starting here")
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) scanIdentifier() int {
	n := 0
	for l.pos+n < len(l.src) && isIdentCont(l.src[l.pos+n]) && n < maxIdentLen {
		n++
	}
	return n
}

func (l *Lexer) scanNumber() (int, int) {
	n := 0
	val := 0
	for l.pos+n < len(l.src) && isDigit(l.src[l.pos+n]) {
		val = val*10 + int(l.src[l.pos+n]-'0')
		n++
	}
	return val, n
}

func (l *Lexer) hasPrefix(op string) bool {
	return hasPrefixStr(l.src[l.pos:], op)
}

func hasPrefixStr(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

func indexByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
