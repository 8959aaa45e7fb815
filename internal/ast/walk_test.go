package ast_test

import (
	"testing"

	"github.com/fvdlfvdl/bpftrace/internal/ast"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

func TestWalkVisitsDepthFirst(t *testing.T) {
	prog := ast.NewProgram(
		[]*ast.Probe{
			ast.NewProbe("kprobe:f",
				ast.NewMapAssign("@x", ast.NewCall("count", types.NewNone())),
				ast.NewExprStmt(ast.NewCall("printf", types.NewNone(),
					ast.NewStr("%d"), ast.NewInteger(1))),
			),
		},
		[]*ast.Subprog{
			ast.NewSubprog("greet", types.NewVoid(),
				ast.NewExprStmt(ast.NewCall("printf", types.NewNone(), ast.NewStr("hi")))),
		},
	)

	var calls, ints, strs int
	ast.Walk(prog, ast.VisitorFunc(func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Call:
			calls++
		case *ast.Integer:
			ints++
		case *ast.Str:
			strs++
		}
		return true
	}))

	if calls != 3 {
		t.Errorf("visited %d calls, want 3", calls)
	}
	if ints != 1 {
		t.Errorf("visited %d integers, want 1", ints)
	}
	if strs != 2 {
		t.Errorf("visited %d strings, want 2", strs)
	}
}

func TestWalkStopDescent(t *testing.T) {
	probe := ast.NewProbe("kprobe:f",
		ast.NewExprStmt(ast.NewCall("printf", types.NewNone(), ast.NewInteger(1))),
	)

	var seenInt bool
	ast.Walk(probe, ast.VisitorFunc(func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Call:
			return false // skip arguments
		case *ast.Integer:
			seenInt = true
		}
		return true
	}))

	if seenInt {
		t.Error("Walk descended into a node the visitor declined")
	}
}

func TestWalkSkipsNilOptionalFields(t *testing.T) {
	// No predicate, a return without a value, an if without else.
	probe := &ast.Probe{
		AttachPoints: []string{"kprobe:f"},
		Body: ast.NewBlock(
			&ast.If{Cond: ast.NewInteger(1), Then: ast.NewBlock()},
			&ast.Jump{Kind: ast.JumpReturn},
		),
	}
	count := 0
	ast.Walk(probe, ast.VisitorFunc(func(ast.Node) bool {
		count++
		return true
	}))
	// probe, body, if, cond, then, jump
	if count != 6 {
		t.Errorf("visited %d nodes, want 6", count)
	}
}
