// Package parser implements the recursive-descent parser described in
// spec.md §4.2: it consumes the lexer's token sequence and produces a
// forest of statement AST roots plus the local-variable and
// function-name tables referenced while parsing.
package parser

import (
	"github.com/go9cc/nanocc/ast"
	"github.com/go9cc/nanocc/diagnostics"
	"github.com/go9cc/nanocc/symbols"
	"github.com/go9cc/nanocc/token"
)

// Parser holds the token cursor and the tables it populates as it
// walks the grammar.
type Parser struct {
	ctx    *diagnostics.Context
	src    string
	tokens []token.Token
	pos    int

	Locals    *symbols.Locals
	Functions *symbols.Functions
}

// New returns a Parser over tokens, sharing ctx for diagnostics.
func New(ctx *diagnostics.Context, tokens []token.Token) *Parser {
	return &Parser{
		ctx:       ctx,
		src:       ctx.Source(),
		tokens:    tokens,
		Locals:    symbols.NewLocals(),
		Functions: symbols.NewFunctions(),
	}
}

// Parse consumes the entire token sequence and returns the program's
// top-level statements, per the grammar's `program ::= stmt*`.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// stmt ::= "return" expr ";"
//        | "if" "(" expr ")" stmt ("else" stmt)?
//        | "while" "(" expr ")" stmt
//        | "for" "(" expr? ";" expr? ";" expr? ")" stmt
//        | "{" stmt* "}"
//        | expr ";"
func (p *Parser) stmt() (ast.Stmt, error) {
	switch {
	case p.consumeKind(token.RETURN):
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return &ast.Return{X: x}, nil

	case p.consumeKind(token.IF):
		if err := p.expect("("); err != nil {
			return nil, err
		}
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		then, err := p.stmt()
		if err != nil {
			return nil, err
		}
		node := &ast.If{Cond: cond, Then: then}
		if p.consumeKind(token.ELSE) {
			els, err := p.stmt()
			if err != nil {
				return nil, err
			}
			node.Else = els
		}
		return node, nil

	case p.consumeKind(token.WHILE):
		if err := p.expect("("); err != nil {
			return nil, err
		}
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		body, err := p.stmt()
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil

	case p.consumeKind(token.FOR):
		if err := p.expect("("); err != nil {
			return nil, err
		}
		node := &ast.For{}
		if !p.consume(";") {
			init, err := p.expr()
			if err != nil {
				return nil, err
			}
			node.Init = &ast.ExprStmt{X: init}
			if err := p.expect(";"); err != nil {
				return nil, err
			}
		}
		if !p.consume(";") {
			cond, err := p.expr()
			if err != nil {
				return nil, err
			}
			node.Cond = cond
			if err := p.expect(";"); err != nil {
				return nil, err
			}
		}
		if !p.consume(")") {
			inc, err := p.expr()
			if err != nil {
				return nil, err
			}
			node.Inc = &ast.ExprStmt{X: inc}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		body, err := p.stmt()
		if err != nil {
			return nil, err
		}
		node.Body = body
		return node, nil

	case p.consume("{"):
		var stmts []ast.Stmt
		for !p.consume("}") {
			if p.atEnd() {
				return nil, p.errHere(diagnostics.SyntaxError, "expected '}'")
			}
			s, err := p.stmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
		return &ast.Block{Stmts: stmts}, nil

	default:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	}
}

func (p *Parser) expr() (ast.Expr, error) {
	return p.assign()
}

// assign ::= equality ("=" assign)?  -- right-associative.
func (p *Parser) assign() (ast.Expr, error) {
	node, err := p.equality()
	if err != nil {
		return nil, err
	}
	if p.consume("=") {
		lvar, ok := node.(*ast.LVar)
		if !ok {
			return nil, p.errHere(diagnostics.SemanticError, "left-hand side of assignment is not a variable")
		}
		value, err := p.assign()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: lvar, Value: value}, nil
	}
	return node, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	node, err := p.relational()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consume("=="):
			node, err = p.binary(ast.EQ, node, p.relational)
		case p.consume("!="):
			node, err = p.binary(ast.NE, node, p.relational)
		default:
			return node, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// relational desugars ">" and ">=" into LT/LE by swapping operands, so
// the code generator never has to know about GT/GE.
func (p *Parser) relational() (ast.Expr, error) {
	node, err := p.add()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consume("<="):
			node, err = p.binary(ast.LE, node, p.add)
		case p.consume("<"):
			node, err = p.binary(ast.LT, node, p.add)
		case p.consume(">="):
			node, err = p.binaryReversed(ast.LE, node, p.add)
		case p.consume(">"):
			node, err = p.binaryReversed(ast.LT, node, p.add)
		default:
			return node, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) add() (ast.Expr, error) {
	node, err := p.mul()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consume("+"):
			node, err = p.binary(ast.ADD, node, p.mul)
		case p.consume("-"):
			node, err = p.binary(ast.SUB, node, p.mul)
		default:
			return node, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) mul() (ast.Expr, error) {
	node, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consume("*"):
			node, err = p.binary(ast.MUL, node, p.unary)
		case p.consume("/"):
			node, err = p.binary(ast.DIV, node, p.unary)
		default:
			return node, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// unary reduces "+x" to parsing x with no node, and turns "-x" into
// SUB(NUM(0), x).
func (p *Parser) unary() (ast.Expr, error) {
	if p.consume("+") {
		return p.unary()
	}
	if p.consume("-") {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: ast.SUB, Left: &ast.Num{Value: 0}, Right: x}, nil
	}
	return p.primary()
}

// primary ::= "(" expr ")" | ident ("(" (expr ("," expr)*)? ")")? | number
func (p *Parser) primary() (ast.Expr, error) {
	if p.consume("(") {
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return node, nil
	}

	if tok, ok := p.consumeIdent(); ok {
		name := tok.Lexeme(p.src)
		if p.consume("(") {
			return p.call(name)
		}
		return &ast.LVar{Name: name, Offset: p.Locals.Offset(name)}, nil
	}

	val, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &ast.Num{Value: val}, nil
}

// call parses the argument list of a CALL, having already consumed
// "name(".
func (p *Parser) call(name string) (ast.Expr, error) {
	p.Functions.Add(name)

	node := &ast.Call{Callee: name}
	if p.consume(")") {
		return node, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, arg)
		if p.consume(",") {
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// binary folds a left-associative binary operator: op(left, next()).
func (p *Parser) binary(op ast.BinOp, left ast.Expr, next func() (ast.Expr, error)) (ast.Expr, error) {
	right, err := next()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: op, Left: left, Right: right}, nil
}

// binaryReversed is binary with operands swapped, used to desugar ">"
// and ">=" into LT/LE.
func (p *Parser) binaryReversed(op ast.BinOp, left ast.Expr, next func() (ast.Expr, error)) (ast.Expr, error) {
	right, err := next()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: op, Left: right, Right: left}, nil
}
