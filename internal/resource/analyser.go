package resource

import (
	"fmt"

	"github.com/fvdlfvdl/bpftrace/internal/ast"
	"github.com/fvdlfvdl/bpftrace/internal/config"
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// fmtCalls are the calls whose arguments after the format string are
// packed into one buffer at runtime.
var fmtCalls = map[string]bool{
	"printf": true,
	"system": true,
	"cat":    true,
	"debugf": true,
}

// perCallOverhead is the fixed header each packed buffer carries.
const perCallOverhead = 8

// roundup8 pads a byte size to the 8-byte slot the packer uses.
func roundup8(n uint64) uint64 {
	return (n + 7) &^ 7
}

type analyser struct {
	res      *Resources
	reporter diag.Reporter
	// firstDef remembers where each map's recorded shape came from,
	// for the conflict note.
	firstDef map[string]source.Span
	maxSize  uint64
}

// Analyse walks a typed program, probe and subprogram bodies alike,
// and returns its resource requirements. Problems become diagnostics
// on the reporter; the walk always finishes, so one conflict does not
// hide later ones.
func Analyse(prog *ast.Program, cfg *config.Config, r diag.Reporter) *Resources {
	a := &analyser{
		res:      NewResources(),
		reporter: r,
		firstDef: make(map[string]source.Span),
	}
	ast.Walk(prog, ast.VisitorFunc(a.visit))
	if cfg != nil && cfg.GetInt(config.KeyOnStackLimit) > 0 {
		// A positive limit moves the buffers off the stack; code
		// generation sizes per-call scratch instead.
		a.maxSize = 0
	}
	a.res.MaxFmtstringArgsSize = a.maxSize
	return a.res
}

func (a *analyser) visit(n ast.Node) bool {
	if e, ok := n.(ast.Expression); ok {
		if t := e.Type(); t.IsStack() {
			a.res.StackTypes[t.Stack.String()] = t.Stack
		}
	}
	switch n := n.(type) {
	case *ast.MapAssign:
		if call, ok := n.Expr.(*ast.Call); ok {
			if kind, agg := KindOf(call.Func); agg {
				a.recordMap(n.Ident, kind, call, n.Span())
			}
		}
	case *ast.Call:
		a.sizeCall(n)
	}
	return true
}

// recordMap applies first-wins for a map's kind and shape and reports
// any later mismatch against the recorded definition.
func (a *analyser) recordMap(ident string, kind MapKind, call *ast.Call, sp source.Span) {
	info := MapInfo{Kind: kind, Shape: a.shapeOf(kind, call)}
	prev, seen := a.res.Maps[ident]
	if !seen {
		a.res.Maps[ident] = info
		a.firstDef[ident] = sp
		return
	}
	if prev.Kind != info.Kind {
		diag.ReportError(a.reporter, diag.ResMapKindConflict, sp,
			fmt.Sprintf("Map %s used with conflicting aggregations: %s and %s",
				ident, prev.Signature(), info.Signature())).
			WithNote(a.firstDef[ident], "first defined here").
			Emit()
		return
	}
	if prev.Shape != info.Shape {
		diag.ReportError(a.reporter, diag.ResMapShapeConflict, sp,
			fmt.Sprintf("Map %s defined with conflicting arguments: %s and %s",
				ident, prev.Signature(), info.Signature())).
			WithNote(a.firstDef[ident], "first defined here").
			Emit()
	}
}

// shapeOf extracts the layout arguments from an aggregation call.
// hist takes an optional bit-width after the value, default 0; lhist
// takes min, max and step. Each must be an integer literal.
func (a *analyser) shapeOf(kind MapKind, call *ast.Call) MapShape {
	var shape MapShape
	switch kind {
	case KindHist:
		if len(call.Args) > 1 {
			shape.Bits = uint64(a.literalArg(call, 1))
		}
	case KindLhist:
		shape.Min = a.literalArg(call, 1)
		shape.Max = a.literalArg(call, 2)
		shape.Step = a.literalArg(call, 3)
	}
	return shape
}

func (a *analyser) literalArg(call *ast.Call, i int) int64 {
	if i >= len(call.Args) {
		diag.ReportError(a.reporter, diag.ResBadCallArg, call.Span(),
			fmt.Sprintf("%s() is missing argument %d", call.Func, i)).Emit()
		return 0
	}
	lit, ok := call.Args[i].(*ast.Integer)
	if !ok {
		diag.ReportError(a.reporter, diag.ResBadCallArg, call.Args[i].Span(),
			fmt.Sprintf("%s() argument %d must be an integer literal", call.Func, i)).Emit()
		return 0
	}
	return lit.Value
}

// sizeCall charges a call's packed-argument buffer against the
// running maximum.
func (a *analyser) sizeCall(call *ast.Call) {
	switch {
	case fmtCalls[call.Func]:
		if len(call.Args) == 0 {
			return
		}
		size := uint64(perCallOverhead)
		for _, arg := range call.Args[1:] {
			size += roundup8(arg.Type().Size())
		}
		a.charge(size)
	case call.Func == "print" && len(call.Args) >= 1:
		// Printing a whole map streams entries and needs no buffer;
		// a single value is packed with an 8-byte type tag.
		if _, isMap := call.Args[0].(*ast.Map); isMap {
			return
		}
		size := uint64(perCallOverhead) + perCallOverhead + roundup8(call.Args[0].Type().Size())
		a.charge(size)
	}
}

func (a *analyser) charge(size uint64) {
	if size > a.maxSize {
		a.maxSize = size
	}
}
