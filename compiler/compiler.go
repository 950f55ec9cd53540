// Package compiler is the core of nanocc.
//
// In brief we go through a three-step process:
//
//  1. Use the lexer to tokenize the program.
//
//  2. Use the parser to turn those tokens into a forest of statement
//     AST roots, plus the local-variable and function-name tables.
//
//  3. Walk that forest with the code generator, emitting one
//     instruction per line, framed by the fixed prologue and epilogue.
//
// The one wrinkle spec.md calls out is that the driver, not the code
// generator, pops each top-level statement's leftover stack value --
// nested statements (inside blocks, if/while/for bodies) are never
// popped here, which is a known, preserved quirk of the original
// implementation this was distilled from.
package compiler

import (
	"fmt"
	"strings"

	"github.com/go9cc/nanocc/codegen"
	"github.com/go9cc/nanocc/config"
	"github.com/go9cc/nanocc/diagnostics"
	"github.com/go9cc/nanocc/lexer"
	"github.com/go9cc/nanocc/parser"
)

// header is the fixed three-line assembly header every program starts
// with, per spec.md §4.4.
const header = ".intel_syntax noprefix\n.global main\nmain:\n"

// Compiler holds our object-state: the program text, and the frame
// configuration the driver's prologue uses.
type Compiler struct {
	source string
	frame  int

	// Stats is filled in after a successful Compile, for callers (the
	// driver's optional debug trace) that want pipeline counts without
	// re-running anything.
	Stats Stats
}

// Stats reports a handful of pipeline counts, useful only for the
// driver's optional NANOCC_DEBUG trace.
type Stats struct {
	Tokens     int
	Statements int
	Labels     int
	Locals     int
	Functions  int
}

// New creates a Compiler, given the program text and the frame
// reservation to use for its prologue.
func New(source string, cfg config.Config) *Compiler {
	return &Compiler{source: source, frame: cfg.Frame()}
}

// Compile runs the full pipeline and returns the generated assembly
// program, or the first diagnostic error encountered.
func (c *Compiler) Compile() (string, error) {
	ctx := diagnostics.New(c.source)

	tokens, err := lexer.New(ctx).Tokenize()
	if err != nil {
		return "", err
	}

	p := parser.New(ctx, tokens)
	stmts, err := p.Parse()
	if err != nil {
		return "", err
	}

	gen := codegen.New()
	var body strings.Builder
	for _, s := range stmts {
		body.WriteString(gen.EmitStatement(s))
		body.WriteString("    pop rax\n")
	}

	c.Stats = Stats{
		Tokens:     len(tokens),
		Statements: len(stmts),
		Labels:     gen.Labels(),
		Locals:     p.Locals.Len(),
		Functions:  len(p.Functions.Names()),
	}

	return c.assemble(body.String()), nil
}

// assemble frames the generated statement bodies with the fixed
// header, the prologue (which reserves c.frame bytes of stack space
// for locals), and the epilogue.
func (c *Compiler) assemble(body string) string {
	var out strings.Builder
	out.WriteString(header)
	out.WriteString("    push rbp\n")
	out.WriteString("    mov rbp, rsp\n")
	fmt.Fprintf(&out, "    sub rsp, %d\n", c.frame)
	out.WriteString(body)
	out.WriteString("    mov rsp, rbp\n")
	out.WriteString("    pop rbp\n")
	out.WriteString("    ret\n")
	return out.String()
}
