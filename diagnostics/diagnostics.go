// Package diagnostics owns the source buffer shared by every stage of
// the pipeline and renders caret-pointed error messages against it.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a CompileError.
type Kind string

// The error kinds the pipeline can produce. Every one is fatal.
const (
	UsageError    Kind = "usage error"
	LexError      Kind = "lex error"
	SyntaxError   Kind = "syntax error"
	SemanticError Kind = "semantic error"
)

// Context holds the installed source buffer. It is immutable once
// created and is shared, read-only, by the lexer and parser for
// offset-to-caret rendering.
type Context struct {
	source string
}

// New installs src as the shared diagnostic context.
func New(src string) *Context {
	return &Context{source: src}
}

// Source returns the installed source buffer.
func (c *Context) Source() string {
	return c.source
}

// Errorf builds a CompileError of the given kind, anchored at byte
// offset pos, wrapping cause if non-nil so the root cause is never
// silently discarded.
func (c *Context) Errorf(kind Kind, pos int, cause error, format string, args ...interface{}) *CompileError {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		cause = errors.Wrap(cause, msg)
	}
	return &CompileError{
		ctx:     c,
		Kind:    kind,
		Pos:     pos,
		Message: msg,
		cause:   cause,
	}
}

// CompileError is a fatal pipeline error anchored at a source offset.
type CompileError struct {
	ctx     *Context
	Kind    Kind
	Pos     int
	Message string
	cause   error
}

// Error satisfies the error interface with the caret-diagnostic
// rendering from the CLI contract: the full source line, a newline,
// N spaces, a caret, then the message.
func (e *CompileError) Error() string {
	return e.Render()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *CompileError) Unwrap() error {
	return e.cause
}

// Cause exposes the wrapped cause to github.com/pkg/errors's Cause,
// which walks a chain of Cause() methods rather than Unwrap().
func (e *CompileError) Cause() error {
	return e.cause
}

// Render produces the two-line caret diagnostic text for this error,
// rooted at the offending line within the installed source buffer.
func (e *CompileError) Render() string {
	if e.ctx == nil {
		return e.Message
	}

	src := e.ctx.source
	lineStart := strings.LastIndexByte(src[:clampPos(e.Pos, len(src))], '\n') + 1
	lineEnd := strings.IndexByte(src[lineStart:], '\n')
	if lineEnd == -1 {
		lineEnd = len(src)
	} else {
		lineEnd += lineStart
	}
	line := src[lineStart:lineEnd]
	col := e.Pos - lineStart

	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString("^ ")
	b.WriteString(e.Message)
	return b.String()
}

func clampPos(pos, max int) int {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}
