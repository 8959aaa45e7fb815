package ast

import (
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// Statement is an executable tree node.
type Statement interface {
	Node
	stmtNode()
}

type stmt struct {
	Sp source.Span
}

func (s *stmt) Span() source.Span { return s.Sp }
func (s *stmt) stmtNode()         {}

// Block is a braced statement sequence.
type Block struct {
	stmt
	Stmts []Statement
}

// ExprStmt evaluates an expression for its effect, e.g. a printf call.
type ExprStmt struct {
	stmt
	Expr Expression
}

// MapAssign is '@name[key] = expr'. Aggregation calls on the right are
// what resource analysis records per map identifier.
type MapAssign struct {
	stmt
	Ident string
	Key   Expression // nil without a key
	Expr  Expression
}

// VarAssign is '$name = expr'.
type VarAssign struct {
	stmt
	Name string
	Expr Expression
}

// If is a conditional with an optional else branch.
type If struct {
	stmt
	Cond Expression
	Then *Block
	Else *Block // nil without else
}

// While is a while loop.
type While struct {
	stmt
	Cond Expression
	Body *Block
}

// For iterates the entries of a map: 'for ($kv : @map) { ... }'.
type For struct {
	stmt
	Decl     Expression // loop variable
	Iterable Expression
	Body     *Block
}

// Unroll repeats its body a literal number of times.
type Unroll struct {
	stmt
	Count Expression
	Body  *Block
}

// JumpKind discriminates Jump statements.
type JumpKind uint8

const (
	// JumpReturn is 'return', optionally with a value.
	JumpReturn JumpKind = iota
	// JumpBreak is 'break'.
	JumpBreak
	// JumpContinue is 'continue'.
	JumpContinue
)

// Jump is a return, break, or continue.
type Jump struct {
	stmt
	Kind  JumpKind
	Value Expression // only for return, may be nil
}
