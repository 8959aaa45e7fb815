package ast

import (
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// Construction helpers. The parser upstream builds trees through
// these too, but their main consumers are tests, which assemble
// already-typed programs directly.

// NewProgram assembles a root node from probes and subprograms.
func NewProgram(probes []*Probe, subprogs []*Subprog) *Program {
	return &Program{Probes: probes, Subprogs: subprogs}
}

// NewProbe builds a probe with one attach point.
func NewProbe(attachPoint string, body ...Statement) *Probe {
	return &Probe{AttachPoints: []string{attachPoint}, Body: NewBlock(body...)}
}

// NewSubprog builds a user-defined function.
func NewSubprog(name string, ret types.Type, body ...Statement) *Subprog {
	return &Subprog{Name: name, ReturnType: ret, Body: NewBlock(body...)}
}

// NewBlock wraps statements in a block.
func NewBlock(stmts ...Statement) *Block {
	return &Block{Stmts: stmts}
}

// NewInteger builds an int64-typed literal.
func NewInteger(v int64) *Integer {
	return &Integer{expr: expr{T: types.NewInt64()}, Value: v}
}

// NewStr builds a string literal typed at its length plus NUL.
func NewStr(s string) *Str {
	return &Str{expr: expr{T: types.NewStringLiteral(s)}, Value: s}
}

// NewIdentifier builds a typed identifier reference.
func NewIdentifier(name string, t types.Type) *Identifier {
	return &Identifier{expr: expr{T: t}, Name: name}
}

// NewBuiltin builds a bare builtin expression such as kstack.
func NewBuiltin(name string, t types.Type) *Builtin {
	return &Builtin{expr: expr{T: t}, Name: name}
}

// NewCall builds a call with a result type.
func NewCall(fn string, t types.Type, args ...Expression) *Call {
	return &Call{expr: expr{T: t}, Func: fn, Args: args}
}

// NewMap builds a map access.
func NewMap(ident string, key Expression, t types.Type) *Map {
	return &Map{expr: expr{T: t}, Ident: ident, Key: key}
}

// NewVariable builds a scratch-variable reference.
func NewVariable(name string, t types.Type) *Variable {
	return &Variable{expr: expr{T: t}, Name: name}
}

// NewCast builds a typed cast of e.
func NewCast(to types.Type, e Expression) *Cast {
	return &Cast{expr: expr{T: to}, Expr: e}
}

// NewField builds a member access typed at the member's type.
func NewField(base Expression, name string, t types.Type) *Field {
	return &Field{expr: expr{T: t}, Base: base, Name: name}
}

// NewExprStmt wraps an expression as a statement.
func NewExprStmt(e Expression) *ExprStmt {
	return &ExprStmt{Expr: e}
}

// NewMapAssign builds '@ident = expr'.
func NewMapAssign(ident string, e Expression) *MapAssign {
	return &MapAssign{Ident: ident, Expr: e}
}

// NewMapAssignAt is NewMapAssign with an explicit span, which map
// conflict diagnostics point at.
func NewMapAssignAt(ident string, e Expression, sp source.Span) *MapAssign {
	ma := NewMapAssign(ident, e)
	ma.Sp = sp
	return ma
}

// NewVarAssign builds '$name = expr'.
func NewVarAssign(name string, e Expression) *VarAssign {
	return &VarAssign{Name: name, Expr: e}
}
