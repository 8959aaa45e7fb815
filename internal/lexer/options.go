package lexer

import (
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// DefaultExpansionBudget bounds the cumulative number of characters
// macro expansion may re-inject in one session. Expansion is pure text
// splicing, so a self-referential replacement chain shows up as
// cumulative growth rather than call depth; the budget is what stops
// it.
const DefaultExpansionBudget = 1000

type Options struct {
	// Reporter receives lexical diagnostics. May be nil.
	Reporter diag.Reporter
	// Macros maps identifiers to replacement text. Consulted on every
	// bare identifier; never mutated by the lexer.
	Macros map[string]string
	// ExpansionBudget overrides DefaultExpansionBudget when positive.
	ExpansionBudget int
}

func (o Options) budget() int {
	if o.ExpansionBudget > 0 {
		return o.ExpansionBudget
	}
	return DefaultExpansionBudget
}

// errLex reports a fatal lexical diagnostic. All lexical errors stop
// token production: Next returns only EOF afterwards.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.failed = true
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
