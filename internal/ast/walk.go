package ast

// Visitor is called for every node in depth-first order. Returning
// false skips the node's children.
type Visitor interface {
	Visit(n Node) bool
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n Node) bool

func (f VisitorFunc) Visit(n Node) bool { return f(n) }

// Walk traverses the tree rooted at n depth-first, visiting parents
// before children. Nil nodes are skipped, so optional fields need no
// guarding by callers.
func Walk(n Node, v Visitor) {
	if n == nil {
		return
	}
	if !v.Visit(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, sp := range n.Subprogs {
			Walk(sp, v)
		}
		for _, p := range n.Probes {
			Walk(p, v)
		}
	case *Probe:
		walkExpr(n.Predicate, v)
		walkBlock(n.Body, v)
	case *Subprog:
		walkBlock(n.Body, v)
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}
	case *ExprStmt:
		walkExpr(n.Expr, v)
	case *MapAssign:
		walkExpr(n.Key, v)
		walkExpr(n.Expr, v)
	case *VarAssign:
		walkExpr(n.Expr, v)
	case *If:
		walkExpr(n.Cond, v)
		walkBlock(n.Then, v)
		walkBlock(n.Else, v)
	case *While:
		walkExpr(n.Cond, v)
		walkBlock(n.Body, v)
	case *For:
		walkExpr(n.Decl, v)
		walkExpr(n.Iterable, v)
		walkBlock(n.Body, v)
	case *Unroll:
		walkExpr(n.Count, v)
		walkBlock(n.Body, v)
	case *Jump:
		walkExpr(n.Value, v)
	case *Call:
		for _, a := range n.Args {
			walkExpr(a, v)
		}
	case *Map:
		walkExpr(n.Key, v)
	case *Unary:
		walkExpr(n.Expr, v)
	case *Binary:
		walkExpr(n.Left, v)
		walkExpr(n.Right, v)
	case *Cast:
		walkExpr(n.Expr, v)
	case *Field:
		walkExpr(n.Base, v)
	case *Index:
		walkExpr(n.Base, v)
		walkExpr(n.Idx, v)
	case *Ternary:
		walkExpr(n.Cond, v)
		walkExpr(n.True, v)
		walkExpr(n.False, v)
	}
}

func walkExpr(e Expression, v Visitor) {
	if e != nil {
		Walk(e, v)
	}
}

func walkBlock(b *Block, v Visitor) {
	if b != nil {
		Walk(b, v)
	}
}
