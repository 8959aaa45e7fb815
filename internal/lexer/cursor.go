package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// chunk is one pending span of input. The bottom chunk is the file
// content; macro expansion pushes replacement text on top so it is
// rescanned before the rest of the file.
type chunk struct {
	text string
	off  int
}

// Cursor reads bytes off a stack of pending chunks while tracking the
// line and column the next byte will occupy. Consuming any byte
// advances the column; a newline advances the line and resets the
// column. Injected text has no byte offset in the file but still
// advances the column, so spans keep tiling inside macro expansions.
type Cursor struct {
	file  *source.File
	stack []chunk
	line  uint32
	col   uint32
	n     int // total bytes consumed, used for span lengths
}

// NewCursor creates a cursor positioned at the start of the file.
func NewCursor(f *source.File) Cursor {
	return Cursor{
		file:  f,
		stack: []chunk{{text: string(f.Content)}},
		line:  1,
		col:   1,
	}
}

// top returns the topmost chunk that still has bytes, popping
// exhausted ones.
func (c *Cursor) top() *chunk {
	for len(c.stack) > 0 {
		t := &c.stack[len(c.stack)-1]
		if t.off < len(t.text) {
			return t
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return nil
}

// EOF reports whether all pending input is exhausted.
func (c *Cursor) EOF() bool { return c.top() == nil }

// Peek returns the next byte without consuming it, or 0 at end of input.
func (c *Cursor) Peek() byte {
	if t := c.top(); t != nil {
		return t.text[t.off]
	}
	return 0
}

// PeekAt returns the byte n positions ahead without consuming
// anything, walking across chunk boundaries. PeekAt(0) is Peek.
// Returns 0 past the end of input.
func (c *Cursor) PeekAt(n int) byte {
	c.top() // drop exhausted chunks so the walk starts at live input
	for i := len(c.stack) - 1; i >= 0; i-- {
		ch := &c.stack[i]
		remain := len(ch.text) - ch.off
		if n < remain {
			return ch.text[ch.off+n]
		}
		n -= remain
	}
	return 0
}

// Bump consumes and returns the next byte, advancing the position.
// Returns 0 at end of input.
func (c *Cursor) Bump() byte {
	t := c.top()
	if t == nil {
		return 0
	}
	b := t.text[t.off]
	t.off++
	c.n++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Peek() == b {
		c.Bump()
		return true
	}
	return false
}

// Inject pushes text so it is scanned before the remaining input,
// exactly as if it had appeared in the source at the current position.
func (c *Cursor) Inject(text string) {
	if text == "" {
		return
	}
	c.stack = append(c.stack, chunk{text: text})
}

// Depth reports how many pending chunks are live; 1 means the cursor
// is reading the file itself.
func (c *Cursor) Depth() int {
	c.top()
	return len(c.stack)
}

// Mark remembers a position so a finished lexeme can be turned into a span.
type Mark struct {
	line uint32
	col  uint32
	n    int
}

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark{line: c.line, col: c.col, n: c.n}
}

// SpanFrom builds the span from a mark to the current position. Its
// length is the number of bytes consumed since the mark.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	length, err := safecast.Conv[uint32](c.n - m.n)
	if err != nil {
		panic(fmt.Errorf("lexeme length overflow: %w", err))
	}
	return source.Span{
		File: c.file.ID,
		Line: m.line,
		Col:  m.col,
		Len:  length,
	}
}

// Pos is the zero-length span at the current position.
func (c *Cursor) Pos() source.Span {
	return source.Span{File: c.file.ID, Line: c.line, Col: c.col}
}
