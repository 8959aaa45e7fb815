package lexer

import (
	"fmt"
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// identRun consumes an identifier run and returns its lexeme.
func (lx *Lexer) identRun() string {
	var sb strings.Builder
	for isIdentContinueByte(lx.cursor.Peek()) {
		sb.WriteByte(lx.cursor.Bump())
	}
	return sb.String()
}

// scanIdent lexes a word: keyword, type-capture opener, macro, or
// plain identifier.
func (lx *Lexer) scanIdent() (token.Token, bool) {
	m := lx.cursor.Mark()
	word := lx.identRun()

	if kind, ok := token.LookupKeyword(word); ok {
		return lx.emit(kind, m, word), true
	}
	if isTypeKeyword(word) {
		lx.beginCapture(word, m)
		return token.Token{}, false
	}
	if repl, ok := lx.opts.Macros[word]; ok && repl != word {
		// Re-inject the replacement so it is retokenized in place. A
		// replacement equal to the identifier itself falls through to
		// the plain-identifier case and never recurses.
		lx.injected += len(repl)
		if lx.injected > lx.opts.budget() {
			lx.errLex(diag.LexMacroRecursion, lx.cursor.SpanFrom(m),
				fmt.Sprintf("Macro recursion limit reached: %s, %s", word, repl))
			return token.Token{}, false
		}
		lx.cursor.Inject(repl)
		return token.Token{}, false
	}
	return lx.emit(token.Ident, m, word), true
}

// isTypeKeyword reports whether the word opens embedded C type syntax.
func isTypeKeyword(word string) bool {
	return word == "struct" || word == "union" || word == "enum"
}

func (lx *Lexer) beginCapture(kw string, m Mark) {
	lx.captureKw = kw
	lx.captureMark = m
	lx.capture.Reset()
	lx.capture.WriteString(kw)
	lx.push(modeStructCapture)
}

// scanMapIdent lexes '@name' or the anonymous '@'.
func (lx *Lexer) scanMapIdent() (token.Token, bool) {
	m := lx.cursor.Mark()
	var sb strings.Builder
	sb.WriteByte(lx.cursor.Bump()) // '@'
	for isIdentContinueByte(lx.cursor.Peek()) {
		sb.WriteByte(lx.cursor.Bump())
	}
	return lx.emit(token.MapIdent, m, sb.String()), true
}

// scanDollar lexes '$name', positional '$1', and '$#'.
func (lx *Lexer) scanDollar() (token.Token, bool) {
	m := lx.cursor.Mark()
	var sb strings.Builder
	sb.WriteByte(lx.cursor.Bump()) // '$'
	switch b := lx.cursor.Peek(); {
	case b == '#':
		sb.WriteByte(lx.cursor.Bump())
		return lx.emit(token.ParamCountLit, m, sb.String()), true
	case isDec(b):
		for isDec(lx.cursor.Peek()) {
			sb.WriteByte(lx.cursor.Bump())
		}
		return lx.emit(token.ParamLit, m, sb.String()), true
	case isIdentStartByte(b):
		for isIdentContinueByte(lx.cursor.Peek()) {
			sb.WriteByte(lx.cursor.Bump())
		}
		return lx.emit(token.VarIdent, m, sb.String()), true
	}
	lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(m), "invalid character '$'")
	return token.Token{}, false
}
