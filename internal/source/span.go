package source

import (
	"fmt"
)

// Span locates a lexeme by the line and column of its first character
// plus its length in bytes. Positions are tracked incrementally by the
// lexer rather than derived from byte offsets: macro-expanded text has
// no offset in the file, but it still advances the column counter, so
// consecutive spans tile even inside expansions. Line and Col are
// 1-based.
type Span struct {
	File FileID
	Line uint32
	Col  uint32
	Len  uint32
}

func (s Span) Empty() bool {
	return s.Len == 0
}

// EndCol is the column one past the last character, on the start line.
func (s Span) EndCol() uint32 {
	return s.Col + s.Len
}

// String renders the position the way diagnostics print it:
// "line:colstart-colend" with an exclusive end column.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Col, s.EndCol())
}

// Cover extends s to include other when both sit on the same line of
// the same file. Spans on different lines keep the receiver unchanged;
// multi-line lexemes already carry their full length.
func (s Span) Cover(other Span) Span {
	if s.File != other.File || s.Line != other.Line {
		return s
	}
	if other.Col < s.Col {
		s.Len += s.Col - other.Col
		s.Col = other.Col
	}
	if other.EndCol() > s.EndCol() {
		s.Len = other.EndCol() - s.Col
	}
	return s
}
