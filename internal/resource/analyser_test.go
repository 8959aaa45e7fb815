package resource_test

import (
	"testing"

	"github.com/fvdlfvdl/bpftrace/internal/ast"
	"github.com/fvdlfvdl/bpftrace/internal/config"
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/resource"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

func analyse(t *testing.T, prog *ast.Program) (*resource.Resources, *diag.Bag) {
	t.Helper()
	return analyseWith(t, prog, config.New())
}

func analyseWith(t *testing.T, prog *ast.Program, cfg *config.Config) (*resource.Resources, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	res := resource.Analyse(prog, cfg, diag.BagReporter{Bag: bag})
	return res, bag
}

func probeProgram(body ...ast.Statement) *ast.Program {
	return ast.NewProgram([]*ast.Probe{ast.NewProbe("BEGIN", body...)}, nil)
}

func printf(format string, args ...ast.Expression) ast.Statement {
	all := append([]ast.Expression{ast.NewStr(format)}, args...)
	return ast.NewExprStmt(ast.NewCall("printf", types.NewNone(), all...))
}

// printf("%d %d", 3, 4): 8 bytes of header plus one 8-byte slot per
// int argument.
func TestFmtstringArgsSizeInts(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		printf("%d %d", ast.NewInteger(3), ast.NewInteger(4)),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 24 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 24", res.MaxFmtstringArgsSize)
	}
}

// Two struct pointers, four arguments: int members round up to 8,
// char[10] members to 16.
func TestFmtstringArgsSizeArrays(t *testing.T) {
	foo := types.NewRecord("struct Foo", 14)
	deref := func(name string) (ast.Expression, ast.Expression) {
		p := ast.NewVariable(name, types.NewPointer(foo))
		a := ast.NewField(p, "a", types.NewInt(32, true))
		b := ast.NewField(p, "b", types.NewArray(types.NewInt(8, true), 10))
		return a, b
	}
	a1, b1 := deref("$foo")
	a2, b2 := deref("$foo2")

	res, bag := analyse(t, probeProgram(printf("%d %s %d %s\n", a1, b1, a2, b2)))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 56 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 56", res.MaxFmtstringArgsSize)
	}
}

// Eight arguments in one call: the metric is a single call's buffer,
// so every short string still occupies one full slot.
func TestFmtstringArgsSizeStrings(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		printf("%dst: %sa; %dnd: %sb;; %drd: %sc;;; %dth: %sd;;;;\n",
			ast.NewInteger(1), ast.NewStr("a"),
			ast.NewInteger(2), ast.NewStr("ab"),
			ast.NewInteger(3), ast.NewStr("abc"),
			ast.NewInteger(4), ast.NewStr("abcd")),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 72 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 72", res.MaxFmtstringArgsSize)
	}
}

func TestFmtstringMaxNotSum(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		printf("%d", ast.NewInteger(1)),
		printf("%d %d", ast.NewInteger(1), ast.NewInteger(2)),
		printf("%d", ast.NewInteger(3)),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 24 {
		t.Errorf("MaxFmtstringArgsSize = %d, want the largest call's 24", res.MaxFmtstringArgsSize)
	}
}

// print of a non-map value packs an 8-byte type tag ahead of the
// rounded value.
func TestPrintNonMapInt(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewExprStmt(ast.NewCall("print", types.NewNone(), ast.NewInteger(5))),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 24 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 24", res.MaxFmtstringArgsSize)
	}
}

func TestPrintNonMapArray(t *testing.T) {
	foo := types.NewRecord("struct Foo", 24)
	p := ast.NewVariable("$foo", types.NewPointer(foo))
	member := ast.NewField(p, "a", types.NewArray(types.NewInt(8, true), 24))
	res, bag := analyse(t, probeProgram(
		ast.NewExprStmt(ast.NewCall("print", types.NewNone(), ast.NewInteger(5))),
		ast.NewExprStmt(ast.NewCall("print", types.NewNone(), member)),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 40 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 40", res.MaxFmtstringArgsSize)
	}
}

func TestPrintWholeMapNeedsNoBuffer(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewExprStmt(ast.NewCall("print", types.NewNone(),
			ast.NewMap("@hits", nil, types.NewInt64()))),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 0 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 0", res.MaxFmtstringArgsSize)
	}
}

// A positive on_stack_limit moves every buffer off the stack, so the
// published size is 0 regardless of call sites.
func TestOnStackLimitPublishesZero(t *testing.T) {
	cfg := config.New()
	cfg.SetInt(config.KeyOnStackLimit, 32, config.SourceScript)
	res, bag := analyseWith(t, probeProgram(
		printf("%d %d", ast.NewInteger(3), ast.NewInteger(4)),
	), cfg)
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 0 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 0 with on_stack_limit set", res.MaxFmtstringArgsSize)
	}
}

// Subprogram bodies are charged exactly like probe bodies.
func TestPrintfInSubprog(t *testing.T) {
	prog := ast.NewProgram(nil, []*ast.Subprog{
		ast.NewSubprog("greet", types.NewVoid(),
			printf("Hello, %s\n", ast.NewStr("world"))),
	})
	res, bag := analyse(t, prog)
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if res.MaxFmtstringArgsSize != 16 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 16", res.MaxFmtstringArgsSize)
	}
}

func hist(args ...ast.Expression) ast.Expression {
	return ast.NewCall("hist", types.NewNone(), args...)
}

func lhist(args ...ast.Expression) ast.Expression {
	return ast.NewCall("lhist", types.NewNone(), args...)
}

func spanAt(line, col uint32) source.Span {
	return source.Span{Line: line, Col: col, Len: 1}
}

func TestMapRecording(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", ast.NewCall("count", types.NewNone())),
		ast.NewMapAssign("@h", hist(ast.NewInteger(1), ast.NewInteger(2))),
		ast.NewMapAssign("@l", lhist(ast.NewInteger(0),
			ast.NewInteger(0), ast.NewInteger(100000), ast.NewInteger(1000))),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if got := res.Maps["@"]; got.Kind != resource.KindCount {
		t.Errorf("@ kind = %v, want count", got.Kind)
	}
	if got := res.Maps["@h"]; got.Kind != resource.KindHist || got.Shape.Bits != 2 {
		t.Errorf("@h = %+v, want hist with 2 bits", got)
	}
	want := resource.MapShape{Min: 0, Max: 100000, Step: 1000}
	if got := res.Maps["@l"]; got.Kind != resource.KindLhist || got.Shape != want {
		t.Errorf("@l = %+v, want lhist %+v", got, want)
	}
}

func TestHistDefaultBits(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", hist(ast.NewInteger(1))),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if got := res.Maps["@"].Shape.Bits; got != 0 {
		t.Errorf("default hist bits = %d, want 0", got)
	}
}

func TestHistBitsConflict(t *testing.T) {
	first := spanAt(1, 9)
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssignAt("@", hist(ast.NewInteger(1), ast.NewInteger(1)), first),
		ast.NewMapAssignAt("@", hist(ast.NewInteger(1), ast.NewInteger(2)), spanAt(1, 24)),
	))
	if bag.Ok() {
		t.Fatal("expected a shape conflict diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.ResMapShapeConflict {
		t.Errorf("code = %v, want ResMapShapeConflict", d.Code)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != first {
		t.Errorf("notes = %+v, want one pointing at the first definition", d.Notes)
	}
	// First definition wins.
	if got := res.Maps["@"].Shape.Bits; got != 1 {
		t.Errorf("recorded bits = %d, want the first definition's 1", got)
	}
}

func TestLhistBoundsConflict(t *testing.T) {
	_, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", lhist(ast.NewInteger(0),
			ast.NewInteger(0), ast.NewInteger(100000), ast.NewInteger(1000))),
		ast.NewMapAssign("@", lhist(ast.NewInteger(0),
			ast.NewInteger(0), ast.NewInteger(100000), ast.NewInteger(100))),
	))
	if bag.Ok() {
		t.Fatal("expected a shape conflict diagnostic")
	}
	if bag.Items()[0].Code != diag.ResMapShapeConflict {
		t.Errorf("code = %v, want ResMapShapeConflict", bag.Items()[0].Code)
	}
}

func TestMatchingShapesDoNotConflict(t *testing.T) {
	_, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", hist(ast.NewInteger(1), ast.NewInteger(3))),
		ast.NewMapAssign("@", hist(ast.NewInteger(9), ast.NewInteger(3))),
	))
	if !bag.Ok() {
		t.Fatalf("matching shapes conflicted: %+v", bag.Items())
	}
}

func TestMapKindConflict(t *testing.T) {
	_, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@x", ast.NewCall("count", types.NewNone())),
		ast.NewMapAssign("@x", hist(ast.NewInteger(1))),
	))
	if bag.Ok() {
		t.Fatal("expected a kind conflict diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.ResMapKindConflict {
		t.Errorf("code = %v, want ResMapKindConflict", d.Code)
	}
}

func TestConflictDoesNotStopTraversal(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", hist(ast.NewInteger(1), ast.NewInteger(1))),
		ast.NewMapAssign("@", hist(ast.NewInteger(1), ast.NewInteger(2))),
		printf("%d", ast.NewInteger(1)),
	))
	if bag.Ok() {
		t.Fatal("expected a conflict")
	}
	if res.MaxFmtstringArgsSize != 16 {
		t.Errorf("MaxFmtstringArgsSize = %d, want 16 from the call after the conflict", res.MaxFmtstringArgsSize)
	}
}

func TestLhistNonLiteralBound(t *testing.T) {
	_, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@", lhist(ast.NewInteger(0),
			ast.NewInteger(0), ast.NewVariable("$max", types.NewInt64()), ast.NewInteger(10))),
	))
	if bag.Ok() {
		t.Fatal("expected a bad-argument diagnostic")
	}
	if bag.Items()[0].Code != diag.ResBadCallArg {
		t.Errorf("code = %v, want ResBadCallArg", bag.Items()[0].Code)
	}
}

func ustack(limit uint64, mode types.StackMode) ast.Expression {
	st := types.StackType{Mode: mode, Limit: limit}
	return ast.NewCall("ustack", types.NewStack(st), ast.NewInteger(int64(limit)))
}

func TestStackTypesDedupByLimit(t *testing.T) {
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@a", ustack(5, types.ModeBpftrace)),
		ast.NewMapAssign("@b", ustack(6, types.ModeBpftrace)),
		ast.NewMapAssign("@c", ustack(6, types.ModeBpftrace)),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(res.StackTypes) != 2 {
		t.Fatalf("stack types = %d, want 2: %v", len(res.StackTypes), res.StackTypes)
	}
	for _, key := range []string{"bpftrace:5", "bpftrace:6"} {
		if _, ok := res.StackTypes[key]; !ok {
			t.Errorf("missing stack type %q", key)
		}
	}
}

func TestStackTypesDedupByMode(t *testing.T) {
	bare := ast.NewBuiltin("ustack", types.NewStack(types.DefaultStackType()))
	res, bag := analyse(t, probeProgram(
		ast.NewMapAssign("@a", ustack(types.DefaultStackLimit, types.ModeRaw)),
		ast.NewMapAssign("@b", ustack(types.DefaultStackLimit, types.ModePerf)),
		ast.NewMapAssign("@c", ustack(types.DefaultStackLimit, types.ModeBpftrace)),
		ast.NewMapAssign("@d", bare),
	))
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	// The bare builtin's default bpftrace:127 collapses into the
	// explicit bpftrace entry.
	if len(res.StackTypes) != 3 {
		t.Fatalf("stack types = %d, want 3: %v", len(res.StackTypes), res.StackTypes)
	}
	if st, ok := res.StackTypes["bpftrace:127"]; !ok || st.Limit != types.DefaultStackLimit {
		t.Errorf("missing default stack type: %v", res.StackTypes)
	}
}
