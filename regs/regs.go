// Package regs holds the small System V AMD64 lookup tables the code
// generator indexes into: the integer argument-passing registers and
// the condition-code suffixes used by the comparison operators.
//
// This is the direct successor of this codebase's original
// instructions package: instead of an enum naming each RPN stack
// operation, it carries the ABI-shaped data tables spec.md §4.3 calls
// for, so the generator switches on an ast.BinOp and indexes a table
// rather than hand-writing six near-identical mov/cmp blocks.
package regs

import "github.com/go9cc/nanocc/ast"

// ArgRegisters lists the first six integer-argument registers, in
// System V AMD64 positional order. A seventh-and-beyond CALL argument
// is left on the runtime stack in reverse push order, as the ABI
// requires.
var ArgRegisters = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// SetCC maps a comparison ast.BinOp to the setcc mnemonic the code
// generator emits after the cmp instruction.
var SetCC = map[ast.BinOp]string{
	ast.EQ: "sete",
	ast.NE: "setne",
	ast.LT: "setl",
	ast.LE: "setle",
}

// IsComparison reports whether op is one of EQ, NE, LT, LE.
func IsComparison(op ast.BinOp) bool {
	_, ok := SetCC[op]
	return ok
}

// Mnemonic maps an arithmetic ast.BinOp to its two-operand x86
// instruction mnemonic. ADD/SUB/MUL share the `dst, src` operand
// order; DIV is handled separately by the generator since it needs
// sign extension first.
var Mnemonic = map[ast.BinOp]string{
	ast.ADD: "add",
	ast.SUB: "sub",
	ast.MUL: "imul",
}
