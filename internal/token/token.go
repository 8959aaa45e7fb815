package token

import (
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer, string, or
// captured-definition literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, StructDefLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Assign, PlusAssign, MinusAssign, StarAssign,
		SlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign,
		PlusPlus, MinusMinus, EqEq, Bang, BangEq, Lt, LtEq, Gt, GtEq, Shl, Shr, Amp, Pipe,
		Caret, Tilde, AndAnd, OrOr, Question, Colon, Semicolon, Comma, Dot, Arrow,
		LParen, RParen, LBrace, RBrace, LBracket, RBracket, EndPred:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwIf, KwElse, KwWhile, KwFor, KwUnroll, KwReturn, KwBreak, KwContinue,
		KwSizeof, KwOffsetof, KwLet, KwConfig, KwFn, KwImport:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsType reports whether the token names or defines a C type.
func (t Token) IsType() bool {
	return t.Kind == TypeIdent || t.Kind == StructDefLit
}
