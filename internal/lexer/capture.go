package lexer

import (
	"fmt"
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// lexStructCapture accumulates text after struct/union/enum until it
// can tell a definition from a bare type name. '*', ')' and ',' mean
// the keyword introduced a cast or argument type: the terminator stays
// in the input to be retokenized normally, and the accumulated name
// comes out as one TypeIdent. '{' starts a definition body instead.
func (lx *Lexer) lexStructCapture() (token.Token, bool) {
	for {
		if lx.cursor.EOF() {
			// The parser owns reporting the unexpected end of input.
			lx.pop()
			return lx.endToken(), true
		}
		switch lx.cursor.Peek() {
		case '*', ')', ',':
			lx.pop()
			name := normalizeTypeName(lx.capture.String())
			return lx.emit(token.TypeIdent, lx.captureMark, name), true
		case '{':
			lx.capture.WriteByte(lx.cursor.Bump())
			lx.push(modeBrace)
			return token.Token{}, false
		default:
			lx.capture.WriteByte(lx.cursor.Bump())
		}
	}
}

// lexBraceBody tracks nested braces inside a captured definition so
// inner braces do not end the capture early. When the outermost brace
// closes, an optional trailing ';' is consumed and the verbatim
// definition becomes one StructDef token.
func (lx *Lexer) lexBraceBody() (token.Token, bool) {
	for {
		if lx.cursor.EOF() {
			lx.modes = lx.modes[:1]
			return lx.endToken(), true
		}
		b := lx.cursor.Bump()
		lx.capture.WriteByte(b)
		switch b {
		case '{':
			lx.push(modeBrace)
		case '}':
			lx.pop()
			if lx.topMode() != modeStructCapture {
				continue
			}
			lx.pop()
			// ';' after horizontal whitespace belongs to the
			// definition; anything else stays untouched.
			i := 0
			for isHorizWS(lx.cursor.PeekAt(i)) {
				i++
			}
			if lx.cursor.PeekAt(i) == ';' {
				for ; i >= 0; i-- {
					lx.cursor.Bump()
				}
			}
			return lx.emit(token.StructDefLit, lx.captureMark, lx.capture.String()), true
		}
	}
}

// lexAfterColon runs right after a ':' token. Whitespace is skipped;
// if the next whole word is struct/union/enum the colon introduced a
// type annotation and the one-name capture begins. Any other input
// stays unconsumed and normal tokenization resumes, so probe
// specifiers like 'kprobe:f' and ternary colons lex unchanged.
func (lx *Lexer) lexAfterColon() (token.Token, bool) {
	lx.skipWhitespace()
	lx.pop()
	word := lx.peekWord()
	if isTypeKeyword(word) {
		m := lx.cursor.Mark()
		for range word {
			lx.cursor.Bump()
		}
		lx.captureKw = word
		lx.captureMark = m
		lx.push(modeStructAfterColon)
	}
	return token.Token{}, false
}

// lexStructAfterColon reads exactly one type name after the
// annotation keyword and emits the combined TypeIdent. There is no
// brace body in this position.
func (lx *Lexer) lexStructAfterColon() (token.Token, bool) {
	lx.skipWhitespace()
	lx.pop()
	if lx.cursor.EOF() {
		return lx.endToken(), true
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		b := lx.cursor.Bump()
		lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(lx.captureMark),
			fmt.Sprintf("invalid character %q after '%s'", string(b), lx.captureKw))
		return token.Token{}, false
	}
	name := lx.identRun()
	return lx.emit(token.TypeIdent, lx.captureMark, lx.captureKw+" "+name), true
}

// peekWord reads the identifier starting at the current position
// without consuming it. Empty when the next character cannot start
// one.
func (lx *Lexer) peekWord() string {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return ""
	}
	var sb strings.Builder
	for i := 0; isIdentContinueByte(lx.cursor.PeekAt(i)); i++ {
		sb.WriteByte(lx.cursor.PeekAt(i))
	}
	return sb.String()
}

// normalizeTypeName collapses interior whitespace runs to single
// spaces and trims the ends: "struct   Foo " becomes "struct Foo".
func normalizeTypeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
