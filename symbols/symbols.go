// Package symbols holds the tables the parser builds: local-variable
// stack offsets and referenced function names. The code generator
// does not read them; it uses the offsets and callee names already
// stored in the AST nodes.
//
// This is the spiritual successor of this codebase's original stack
// package: the same "append at the tail, look up by equality" shape,
// repurposed from a generic string stack into the two ordered tables
// spec.md's data model calls for.
package symbols

// slotSize is the number of bytes each local variable occupies on the
// stack frame.
const slotSize = 8

// Locals maps identifier lexemes to stack offsets, in first-occurrence
// order. A fresh name claims the next multiple of slotSize beyond the
// previous maximum; once assigned, an offset never changes.
type Locals struct {
	order  []string
	offset map[string]int
}

// NewLocals returns an empty local-variable table.
func NewLocals() *Locals {
	return &Locals{offset: make(map[string]int)}
}

// Offset returns the stack offset for name, allocating a fresh slot on
// first occurrence.
func (l *Locals) Offset(name string) int {
	if off, ok := l.offset[name]; ok {
		return off
	}
	off := (len(l.order) + 1) * slotSize
	l.offset[name] = off
	l.order = append(l.order, name)
	return off
}

// Len returns the number of distinct locals seen so far.
func (l *Locals) Len() int {
	return len(l.order)
}

// Names returns the locals in first-occurrence order.
func (l *Locals) Names() []string {
	return append([]string(nil), l.order...)
}

// Functions is an insertion-ordered, deduplicated set of callee names
// referenced by CALL expressions. No signatures are tracked; it exists
// only so callers can enumerate the externs a generated program needs.
type Functions struct {
	order []string
	seen  map[string]bool
}

// NewFunctions returns an empty function-name set.
func NewFunctions() *Functions {
	return &Functions{seen: make(map[string]bool)}
}

// Add records name as a referenced callee, if not already present.
func (f *Functions) Add(name string) {
	if f.seen[name] {
		return
	}
	f.seen[name] = true
	f.order = append(f.order, name)
}

// Names returns the referenced callees in first-occurrence order.
func (f *Functions) Names() []string {
	return append([]string(nil), f.order...)
}
