package lexer

import (
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// skipWhitespace consumes horizontal and vertical whitespace. Newlines
// advance the line counter inside the cursor.
func (lx *Lexer) skipWhitespace() {
	for isWhitespace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
}

// lexSlash distinguishes the four things that start with '/': line
// comments, block comments, the end-of-predicate marker, and division.
func (lx *Lexer) lexSlash() (token.Token, bool) {
	m := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		lx.skipLineComment()
		return token.Token{}, false
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.commentMark = m
		lx.push(modeComment)
		return token.Token{}, false
	}
	lx.cursor.Bump() // the '/'
	if lx.cursor.Eat('=') {
		return lx.emit(token.SlashAssign, m, "/="), true
	}
	// A '/' closes a predicate when the next significant character
	// opens the action block or another predicate; otherwise it is
	// division. The lookahead skips whitespace without consuming it.
	i := 0
	for isWhitespace(lx.cursor.PeekAt(i)) {
		i++
	}
	if b := lx.cursor.PeekAt(i); b == '/' || b == '{' {
		return lx.emit(token.EndPred, m, "/"), true
	}
	return lx.emit(token.Slash, m, "/"), true
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// lexBlockComment consumes comment text until the Comment mode on top
// of the stack is popped by its matching closer. Nested openers push
// further Comment entries, so block comments nest. End of input here
// is fatal.
func (lx *Lexer) lexBlockComment() {
	for {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedBlockComment,
				lx.cursor.SpanFrom(lx.commentMark), "unterminated block comment")
			return
		}
		b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)
		switch {
		case b0 == '/' && b1 == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.push(modeComment)
		case b0 == '*' && b1 == '/':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.pop()
			if lx.topMode() != modeComment {
				return
			}
		default:
			lx.cursor.Bump()
		}
	}
}
