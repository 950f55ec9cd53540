package compiler

import (
	"strings"
	"testing"

	"github.com/go9cc/nanocc/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	c := New(src, config.Config{})
	out, err := c.Compile()
	require.NoError(t, err)
	return out
}

func TestHeaderPrologueEpilogueShape(t *testing.T) {
	out := compile(t, "1;")

	assert.True(t, strings.HasPrefix(out, ".intel_syntax noprefix\n.global main\nmain:\n"))
	assert.Contains(t, out, "    push rbp\n")
	assert.Contains(t, out, "    mov rbp, rsp\n")
	assert.Contains(t, out, "    sub rsp, 208\n")
	assert.True(t, strings.HasSuffix(out, "    mov rsp, rbp\n    pop rbp\n    ret\n"))
}

func TestFrameReservationIsConfigurable(t *testing.T) {
	c := New("1;", config.Config{FrameReservation: 512})
	out, err := c.Compile()
	require.NoError(t, err)
	assert.Contains(t, out, "    sub rsp, 512\n")
}

func TestEachTopLevelStatementIsPopped(t *testing.T) {
	out := compile(t, "1; 2; 3;")
	assert.Equal(t, 3, strings.Count(out, "    pop rax\n"))
}

// The following mirror spec.md §8's worked scenarios. We assert on
// structural shape (the right instructions appear, in the right
// relative order) rather than reimplementing an x86 interpreter.

func TestScenarioAddThenSub(t *testing.T) {
	out := compile(t, "5+20-4;")
	assert.Contains(t, out, "push 5")
	assert.Contains(t, out, "push 20")
	assert.Contains(t, out, "add rax, rdi")
	assert.Contains(t, out, "push 4")
	assert.Contains(t, out, "sub rax, rdi")
}

func TestScenarioMulTighterThanAdd(t *testing.T) {
	out := compile(t, "5+6*7;")
	mulIdx := strings.Index(out, "imul rax, rdi")
	addIdx := strings.Index(out, "add rax, rdi")
	require.NotEqual(t, -1, mulIdx)
	require.NotEqual(t, -1, addIdx)
	assert.Less(t, mulIdx, addIdx, "the multiply must be emitted, and complete, before the add")
}

func TestScenarioParenthesesThenDivide(t *testing.T) {
	out := compile(t, "(3+5)/2;")
	assert.Contains(t, out, "cqo")
	assert.Contains(t, out, "idiv rdi")
}

func TestScenarioUnaryMinus(t *testing.T) {
	out := compile(t, "-10+20;")
	assert.Contains(t, out, "push 0")
	assert.Contains(t, out, "push 10")
	assert.Contains(t, out, "sub rax, rdi")
}

func TestScenarioAssignmentChain(t *testing.T) {
	out := compile(t, "a=3; b=5*6-8; a+b/2;")
	// 'a' is the first local declared, so every address computation for
	// it (the assignment target, then the read in the final expression)
	// subtracts the same first-slot offset from rbp.
	assert.Equal(t, 2, strings.Count(out, "sub rax, 8\n"), "two address computations for 'a', the first-declared local")
	assert.Contains(t, out, "sub rax, 16\n", "'b' is the second local, at the next offset")
}

func TestScenarioIfReturn(t *testing.T) {
	out := compile(t, "if (1==1) return 42; return 0;")
	assert.Contains(t, out, "sete al")
	assert.Contains(t, out, "push 42")
	assert.Contains(t, out, "ret")
}

func TestScenarioDanglingWhileBody(t *testing.T) {
	// No braces: "i=i+1;" is a sibling of the while, not its body.
	out := compile(t, "i=0; s=0; while (i<10) s=s+i; i=i+1; return s;")
	assert.Contains(t, out, ".L.begin.0:")
	assert.Contains(t, out, ".L.end.0:")
	// Only one loop is ever compiled: label id 1 should not appear as
	// a second loop (the dangling increment is a plain statement).
	assert.NotContains(t, out, ".L.begin.1:")
}

func TestErrorOnLexFailure(t *testing.T) {
	c := New("1 + $", config.Config{})
	_, err := c.Compile()
	require.Error(t, err)
}

func TestErrorOnSyntaxFailure(t *testing.T) {
	c := New("1 +", config.Config{})
	_, err := c.Compile()
	require.Error(t, err)
}
