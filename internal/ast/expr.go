package ast

import (
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// Expression is a tree node with a resolved type. The semantic layer
// fills T before resource analysis runs; this module never mutates it.
type Expression interface {
	Node
	Type() types.Type
	exprNode()
}

// expr carries the fields every expression shares.
type expr struct {
	T  types.Type
	Sp source.Span
}

func (e *expr) Type() types.Type  { return e.T }
func (e *expr) Span() source.Span { return e.Sp }
func (e *expr) exprNode()         {}

// Integer is an integer literal.
type Integer struct {
	expr
	Value int64
}

// Str is a string literal; its type size is the length plus NUL.
type Str struct {
	expr
	Value string
}

// Identifier is a plain name, including builtin variables like pid.
type Identifier struct {
	expr
	Name string
}

// Builtin is a zero-argument builtin used as a bare expression,
// e.g. kstack without a call form.
type Builtin struct {
	expr
	Name string
}

// Call is a builtin or subprogram call.
type Call struct {
	expr
	Func string
	Args []Expression
}

// Map is an aggregation map access: '@name[key]' or bare '@name'.
// Ident keeps the sigil, so the anonymous map is "@".
type Map struct {
	expr
	Ident string
	Key   Expression // nil for bare access
}

// Variable is a scratch variable: '$name'.
type Variable struct {
	expr
	Name string
}

// Unary is a prefix or postfix operator application.
type Unary struct {
	expr
	Op   string
	Expr Expression
}

// Binary is an infix operator application.
type Binary struct {
	expr
	Op    string
	Left  Expression
	Right Expression
}

// Cast converts Expr to the annotated type, e.g. (struct Foo *)0.
type Cast struct {
	expr
	Expr Expression
}

// Field accesses a record member through '.' or '->'.
type Field struct {
	expr
	Base Expression
	Name string
}

// Index subscripts an array or pointer.
type Index struct {
	expr
	Base Expression
	Idx  Expression
}

// Ternary is 'cond ? a : b'.
type Ternary struct {
	expr
	Cond  Expression
	True  Expression
	False Expression
}
