package lexer

import (
	"fmt"
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// scanString lexes a double-quoted literal, decoding escapes into the
// token text. The span covers the quotes. Every failure case is
// fatal, naming the offending sequence and its location.
func (lx *Lexer) scanString() (token.Token, bool) {
	m := lx.cursor.Mark()
	lx.push(modeString)
	defer lx.pop()
	lx.cursor.Bump() // opening '"'

	var out strings.Builder
	for {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(m),
				"unterminated string literal")
			return token.Token{}, false
		}
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, m, out.String()), true
		case '\n':
			lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(m),
				"unterminated string literal: newline before closing '\"'")
			return token.Token{}, false
		case '\\':
			if !lx.scanEscape(&out, m) {
				return token.Token{}, false
			}
		default:
			out.WriteByte(lx.cursor.Bump())
		}
	}
}

// scanEscape decodes one backslash escape sequence into out. Reports
// and returns false on an invalid one.
func (lx *Lexer) scanEscape(out *strings.Builder, strMark Mark) bool {
	em := lx.cursor.Mark()
	lx.cursor.Bump() // backslash
	if lx.cursor.EOF() {
		lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(strMark),
			"unterminated string literal")
		return false
	}
	switch b := lx.cursor.Peek(); {
	case b == 'n':
		lx.cursor.Bump()
		out.WriteByte('\n')
	case b == 't':
		lx.cursor.Bump()
		out.WriteByte('\t')
	case b == 'r':
		lx.cursor.Bump()
		out.WriteByte('\r')
	case b == '"':
		lx.cursor.Bump()
		out.WriteByte('"')
	case b == '\\':
		lx.cursor.Bump()
		out.WriteByte('\\')
	case isOct(b):
		// One to three octal digits; the value must fit a byte.
		v := 0
		var digits strings.Builder
		for i := 0; i < 3 && isOct(lx.cursor.Peek()); i++ {
			c := lx.cursor.Bump()
			digits.WriteByte(c)
			v = v*8 + int(c-'0')
		}
		if v > 0xff {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(em),
				fmt.Sprintf("octal escape sequence out of range '\\%s'", digits.String()))
			return false
		}
		out.WriteByte(byte(v))
	case b == 'x':
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(em),
				"invalid escape character '\\x'")
			return false
		}
		v := 0
		for i := 0; i < 2 && isHex(lx.cursor.Peek()); i++ {
			v = v*16 + hexVal(lx.cursor.Bump())
		}
		out.WriteByte(byte(v))
	default:
		lx.cursor.Bump()
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(em),
			fmt.Sprintf("invalid escape character '\\%c'", b))
		return false
	}
	return true
}
