package lexer_test

import (
	"strings"
	"testing"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

func TestMacroExpansion(t *testing.T) {
	toks, bag := lexAll(t, "@ = SIX;", map[string]string{"SIX": "6"})
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	expectKinds(t, toks, token.MapIdent, token.Assign, token.IntLit, token.Semicolon)
	if toks[2].Text != "6" {
		t.Errorf("expanded literal = %q, want %q", toks[2].Text, "6")
	}
}

func TestMacroExpandsToMultipleTokens(t *testing.T) {
	toks, bag := lexAll(t, "EXPR", map[string]string{"EXPR": "1 + 2"})
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	expectKinds(t, toks, token.IntLit, token.Plus, token.IntLit)
}

func TestMacroChain(t *testing.T) {
	macros := map[string]string{"A": "B", "B": "C", "C": "42"}
	toks, bag := lexAll(t, "A", macros)
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	expectKinds(t, toks, token.IntLit)
	if toks[0].Text != "42" {
		t.Errorf("chained expansion = %q, want %q", toks[0].Text, "42")
	}
}

func TestSelfExpandingMacroIsIdentifier(t *testing.T) {
	// A macro whose replacement is itself is the common guard idiom;
	// it must lex as a plain identifier any number of times.
	src := strings.Repeat("FOO ", 500)
	toks, bag := lexAll(t, src, map[string]string{"FOO": "FOO"})
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(toks) != 500 {
		t.Fatalf("got %d tokens, want 500", len(toks))
	}
	for _, tok := range toks {
		if tok.Kind != token.Ident || tok.Text != "FOO" {
			t.Fatalf("got %v %q, want identifier FOO", tok.Kind, tok.Text)
		}
	}
}

func TestMacroRecursionLimit(t *testing.T) {
	// Each expansion of A re-injects two more As; the cumulative
	// character budget is the only thing that stops it.
	_, bag := lexAll(t, "A", map[string]string{"A": "A A"})
	if bag.Ok() {
		t.Fatal("expected the recursion-limit diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.LexMacroRecursion {
		t.Errorf("code = %v, want LexMacroRecursion", d.Code)
	}
	// The diagnostic names both the identifier and its replacement.
	if !strings.Contains(d.Message, "A") || !strings.Contains(d.Message, "A A") {
		t.Errorf("message %q does not name the macro and replacement", d.Message)
	}
}

func TestMacroMutualRecursionLimit(t *testing.T) {
	_, bag := lexAll(t, "PING", map[string]string{"PING": "PONG", "PONG": "PING"})
	if bag.Ok() {
		t.Fatal("expected the recursion-limit diagnostic")
	}
	if bag.Items()[0].Code != diag.LexMacroRecursion {
		t.Errorf("code = %v, want LexMacroRecursion", bag.Items()[0].Code)
	}
}

func TestMacroBudgetCountsCharacters(t *testing.T) {
	// A long but finite chain stays under the 1000-character budget.
	macros := map[string]string{"WIDE": strings.Repeat("x", 999)}
	toks, bag := lexAll(t, "WIDE", macros)
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	expectKinds(t, toks, token.Ident)
	if len(toks[0].Text) != 999 {
		t.Errorf("expanded identifier length = %d, want 999", len(toks[0].Text))
	}
}

func TestMacroKeywordsWin(t *testing.T) {
	// Keywords are resolved before the macro table is consulted.
	toks, bag := lexAll(t, "if", map[string]string{"if": "1"})
	if !bag.Ok() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	expectKinds(t, toks, token.KwIf)
}
