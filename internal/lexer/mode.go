package lexer

// mode names one lexical state. The lexer keeps an explicit stack of
// modes; the top of the stack decides which rules apply to the next
// byte.
type mode uint8

const (
	// modeNormal is ordinary tokenization.
	modeNormal mode = iota
	// modeComment is a block comment. Each nested /* pushes another
	// Comment entry, so closers must balance.
	modeComment
	// modeString is inside a string literal.
	modeString
	// modeStructCapture accumulates text after struct/union/enum until
	// it turns out to be a definition body or a bare type name.
	modeStructCapture
	// modeBrace is inside a braced definition body; nested { push again.
	modeBrace
	// modeAfterColon follows an emitted ':' and decides whether a type
	// annotation starts here.
	modeAfterColon
	// modeStructAfterColon reads the single type name of an annotation
	// such as 'fn f(): struct Foo'.
	modeStructAfterColon
)

func (m mode) String() string {
	switch m {
	case modeNormal:
		return "Normal"
	case modeComment:
		return "Comment"
	case modeString:
		return "String"
	case modeStructCapture:
		return "StructCapture"
	case modeBrace:
		return "Brace"
	case modeAfterColon:
		return "AfterColon"
	case modeStructAfterColon:
		return "StructAfterColon"
	}
	return "Unknown"
}
