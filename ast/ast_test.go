package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExprAssertions builds each expression node as an Expr (and
// TestStmtAssertions each statement node as a Stmt), so a node kind
// that silently fell out of its interface set would stop compiling.
func TestExprAssertions(t *testing.T) {
	var nodes []Expr = []Expr{
		&Num{Value: 3},
		&LVar{Name: "a", Offset: 8},
		&Binary{Op: ADD, Left: &Num{Value: 1}, Right: &Num{Value: 2}},
		&Assign{Target: &LVar{Name: "a", Offset: 8}, Value: &Num{Value: 3}},
		&Call{Callee: "f", Args: []Expr{&Num{Value: 1}}},
	}

	for _, n := range nodes {
		assert.NotNil(t, n)
	}
}

func TestStmtAssertions(t *testing.T) {
	var nodes []Stmt = []Stmt{
		&ExprStmt{X: &Num{Value: 1}},
		&Return{X: &Num{Value: 0}},
		&If{Cond: &Num{Value: 1}, Then: &ExprStmt{X: &Num{Value: 1}}},
		&While{Cond: &Num{Value: 1}, Body: &Block{}},
		&For{Body: &Block{}},
		&Block{},
	}

	for _, n := range nodes {
		assert.NotNil(t, n)
	}
}

func TestAssignTargetIsLVar(t *testing.T) {
	a := &Assign{Target: &LVar{Name: "x", Offset: 8}, Value: &Num{Value: 1}}
	assert.Equal(t, "x", a.Target.Name)
	assert.Equal(t, 8, a.Target.Offset)
}
