package lexer

import (
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/numlit"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// scanNumber lexes an integer literal: decimal with underscore
// separators, 0x/0X hexadecimal, or scientific notation, plus an
// optional u/l suffix run. The whole lexeme is validated by numlit;
// overflow, misplaced separators, and bad suffixes are fatal.
func (lx *Lexer) scanNumber() (token.Token, bool) {
	m := lx.cursor.Mark()
	var sb strings.Builder

	sb.WriteByte(lx.cursor.Bump()) // first digit
	b := lx.cursor.Peek()
	if (b == 'x' || b == 'X') && sb.String() == "0" && isHex(lx.cursor.PeekAt(1)) {
		sb.WriteByte(lx.cursor.Bump())
		for isHex(lx.cursor.Peek()) {
			sb.WriteByte(lx.cursor.Bump())
		}
	} else {
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			sb.WriteByte(lx.cursor.Bump())
		}
		// Exponent only with digits on both sides; a lone 'e' starts
		// the next identifier instead.
		if e := lx.cursor.Peek(); (e == 'e' || e == 'E') && isDec(lx.cursor.PeekAt(1)) {
			sb.WriteByte(lx.cursor.Bump())
			for isDec(lx.cursor.Peek()) {
				sb.WriteByte(lx.cursor.Bump())
			}
		}
	}
	for isSuffixByte(lx.cursor.Peek()) {
		sb.WriteByte(lx.cursor.Bump())
	}

	lexeme := sb.String()
	if _, err := numlit.Parse(lexeme); err != nil {
		lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(m), err.Error())
		return token.Token{}, false
	}
	return lx.emit(token.IntLit, m, lexeme), true
}
