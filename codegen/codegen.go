// Package codegen walks the parsed AST forest and emits the x86-64
// assembly body for it, following the stack-machine evaluation model
// from spec.md §4.3: every expression, once generated, leaves exactly
// one 64-bit value on the runtime stack.
//
// The driver (package compiler) owns the surrounding frame: the assembly
// header, the function prologue/epilogue, and the per-top-level-
// statement "pop rax" that discards each statement's leftover value.
// This package only emits the statement and expression bodies.
package codegen

import (
	"fmt"
	"strings"

	"github.com/go9cc/nanocc/ast"
	"github.com/go9cc/nanocc/regs"
)

// Generator accumulates emitted assembly text and mints unique labels
// for branches and loop bodies.
type Generator struct {
	out    strings.Builder
	labels int
}

// New returns an empty Generator.
func New() *Generator {
	return &Generator{}
}

// String returns everything emitted so far.
func (g *Generator) String() string {
	return g.out.String()
}

// Statement emits the code for a single top-level or nested statement.
func (g *Generator) Statement(s ast.Stmt) {
	g.genStmt(s)
}

// EmitStatement emits s and returns only the text it produced, letting
// a caller interleave per-statement bookkeeping (like the driver's
// per-top-level-statement "pop rax") without losing the running label
// counter between calls.
func (g *Generator) EmitStatement(s ast.Stmt) string {
	before := g.out.Len()
	g.genStmt(s)
	return g.out.String()[before:]
}

// Labels reports how many labels have been minted so far.
func (g *Generator) Labels() int {
	return g.labels
}

func (g *Generator) instr(format string, args ...interface{}) {
	g.out.WriteString("    ")
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *Generator) label(format string, args ...interface{}) {
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

// nextLabel mints a fresh, monotonically increasing label id.
func (g *Generator) nextLabel() int {
	n := g.labels
	g.labels++
	return n
}

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		g.genExpr(n.X)

	case *ast.Return:
		g.genExpr(n.X)
		g.instr("pop rax")
		g.instr("mov rsp, rbp")
		g.instr("pop rbp")
		g.instr("ret")

	case *ast.If:
		id := g.nextLabel()
		g.genExpr(n.Cond)
		g.instr("pop rax")
		g.instr("cmp rax, 0")
		if n.Else != nil {
			g.instr("je  .L.else.%d", id)
			g.genStmt(n.Then)
			g.instr("jmp .L.end.%d", id)
			g.label(".L.else.%d:", id)
			g.genStmt(n.Else)
		} else {
			g.instr("je  .L.end.%d", id)
			g.genStmt(n.Then)
		}
		g.label(".L.end.%d:", id)

	case *ast.While:
		id := g.nextLabel()
		g.label(".L.begin.%d:", id)
		g.genExpr(n.Cond)
		g.instr("pop rax")
		g.instr("cmp rax, 0")
		g.instr("je  .L.end.%d", id)
		g.genStmt(n.Body)
		g.instr("jmp .L.begin.%d", id)
		g.label(".L.end.%d:", id)

	case *ast.For:
		id := g.nextLabel()
		if n.Init != nil {
			g.genStmt(n.Init)
		}
		g.label(".L.begin.%d:", id)
		if n.Cond != nil {
			g.genExpr(n.Cond)
			g.instr("pop rax")
			g.instr("cmp rax, 0")
			g.instr("je  .L.end.%d", id)
		}
		g.genStmt(n.Body)
		if n.Inc != nil {
			g.genStmt(n.Inc)
		}
		g.instr("jmp .L.begin.%d", id)
		g.label(".L.end.%d:", id)

	case *ast.Block:
		// No per-child pop: only the driver pops, and only after a
		// top-level statement. See spec.md §9 on dangling block values.
		for _, child := range n.Stmts {
			g.genStmt(child)
		}

	default:
		panic(fmt.Sprintf("codegen: unhandled statement %T", s))
	}
}

func (g *Generator) genExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Num:
		g.instr("push %d", n.Value)

	case *ast.LVar:
		g.genLVarAddr(n)
		g.instr("pop rax")
		g.instr("mov rax, [rax]")
		g.instr("push rax")

	case *ast.Assign:
		g.genLVarAddr(n.Target)
		g.genExpr(n.Value)
		g.instr("pop rdi")
		g.instr("pop rax")
		g.instr("mov [rax], rdi")
		g.instr("push rdi")

	case *ast.Call:
		g.genCall(n)

	case *ast.Binary:
		g.genBinary(n)

	default:
		panic(fmt.Sprintf("codegen: unhandled expression %T", e))
	}
}

// genLVarAddr computes the effective address of an lvalue and pushes
// it: frame_base - offset.
func (g *Generator) genLVarAddr(v *ast.LVar) {
	g.instr("mov rax, rbp")
	g.instr("sub rax, %d", v.Offset)
	g.instr("push rax")
}

func (g *Generator) genBinary(n *ast.Binary) {
	g.genExpr(n.Left)
	g.genExpr(n.Right)
	g.instr("pop rdi")
	g.instr("pop rax")

	switch {
	case n.Op == ast.DIV:
		g.instr("cqo")
		g.instr("idiv rdi")

	case regs.IsComparison(n.Op):
		g.instr("cmp rax, rdi")
		g.instr("%s al", regs.SetCC[n.Op])
		g.instr("movzx rax, al")

	default:
		g.instr("%s rax, rdi", regs.Mnemonic[n.Op])
	}
	g.instr("push rax")
}

// genCall generates each argument right-to-left so that, after
// pushing, the first argument sits on top of the stack; popping the
// first min(len(Args), 6) values then assigns registers in positional
// order, and any excess arguments are left on the stack already in
// the order System V AMD64 requires for stack-passed parameters.
func (g *Generator) genCall(c *ast.Call) {
	for i := len(c.Args) - 1; i >= 0; i-- {
		g.genExpr(c.Args[i])
	}

	regCount := len(c.Args)
	if regCount > len(regs.ArgRegisters) {
		regCount = len(regs.ArgRegisters)
	}
	for i := 0; i < regCount; i++ {
		g.instr("pop rax")
		g.instr("mov %s, rax", regs.ArgRegisters[i])
	}

	g.instr("call %s", c.Callee)
	g.instr("push rax")
}
