package lexer

import (
	"fmt"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// opEntry maps an operator lexeme to its kind. The table is ordered
// longest-first so three-byte operators match before their prefixes.
type opEntry struct {
	lexeme string
	kind   token.Kind
}

var operators = []opEntry{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"->", token.Arrow},
	{"=", token.Assign},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"%", token.Percent},
	{"!", token.Bang},
	{"<", token.Lt},
	{">", token.Gt},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"?", token.Question},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
}

// scanOperator matches punctuation longest-first. ':' is special: it
// is always its own token, and emitting it arms the AfterColon mode
// that spots return-type annotations. '/' never reaches here; lexSlash
// owns it.
func (lx *Lexer) scanOperator() (token.Token, bool) {
	m := lx.cursor.Mark()
	if lx.cursor.Peek() == ':' {
		lx.cursor.Bump()
		lx.push(modeAfterColon)
		return lx.emit(token.Colon, m, ":"), true
	}
	for _, op := range operators {
		if lx.matchAhead(op.lexeme) {
			for range op.lexeme {
				lx.cursor.Bump()
			}
			return lx.emit(op.kind, m, op.lexeme), true
		}
	}
	b := lx.cursor.Bump()
	lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(m),
		fmt.Sprintf("invalid character %q", string(b)))
	return token.Token{}, false
}

// matchAhead reports whether the pending input starts with s.
func (lx *Lexer) matchAhead(s string) bool {
	for i := 0; i < len(s); i++ {
		if lx.cursor.PeekAt(i) != s[i] {
			return false
		}
	}
	return true
}
