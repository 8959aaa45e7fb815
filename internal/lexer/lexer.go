package lexer

import (
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// Lexer tokenizes one script. All state that persists across Next
// calls lives in this value: the mode stack, the capture buffer for
// embedded type syntax, and the macro expansion counter. Nothing is
// shared between sessions.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	modes []mode

	capture     strings.Builder // struct/union/enum capture accumulator
	captureKw   string          // keyword that opened the capture
	captureMark Mark
	commentMark Mark // start of the outermost open block comment

	injected int  // cumulative macro-injected characters
	failed   bool // set by the first fatal diagnostic
}

// New creates a lexer session over the file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		modes:  []mode{modeNormal},
	}
}

func (lx *Lexer) push(m mode) { lx.modes = append(lx.modes, m) }
func (lx *Lexer) pop()        { lx.modes = lx.modes[:len(lx.modes)-1] }

func (lx *Lexer) topMode() mode { return lx.modes[len(lx.modes)-1] }

// Next returns the next token. It dispatches on the top lexical mode
// until a token is ready. After the first fatal diagnostic or the end
// of input it returns EOF tokens forever.
func (lx *Lexer) Next() token.Token {
	for {
		if lx.failed {
			return lx.endToken()
		}
		var (
			tok token.Token
			ok  bool
		)
		switch lx.topMode() {
		case modeComment:
			lx.lexBlockComment()
			continue
		case modeStructCapture:
			tok, ok = lx.lexStructCapture()
		case modeBrace:
			tok, ok = lx.lexBraceBody()
		case modeAfterColon:
			tok, ok = lx.lexAfterColon()
		case modeStructAfterColon:
			tok, ok = lx.lexStructAfterColon()
		default:
			tok, ok = lx.lexNormal()
		}
		if ok {
			return tok
		}
	}
}

func (lx *Lexer) endToken() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.cursor.Pos()}
}

// lexNormal produces one token under ordinary rules, or none when it
// only changed modes (comment start, struct capture, macro expansion).
func (lx *Lexer) lexNormal() (token.Token, bool) {
	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return lx.endToken(), true
	}
	b := lx.cursor.Peek()
	switch {
	case b == '/':
		return lx.lexSlash()
	case isIdentStartByte(b):
		return lx.scanIdent()
	case isDec(b):
		return lx.scanNumber()
	case b == '"':
		return lx.scanString()
	case b == '@':
		return lx.scanMapIdent()
	case b == '$':
		return lx.scanDollar()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) emit(kind token.Kind, m Mark, text string) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: text}
}
