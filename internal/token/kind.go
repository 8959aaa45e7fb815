package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token. Builtin function and
	// builtin variable names lex as Ident; later phases resolve them.
	Ident
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwUnroll represents the 'unroll' keyword.
	KwUnroll // unroll
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwSizeof represents the 'sizeof' keyword.
	KwSizeof // sizeof
	// KwOffsetof represents the 'offsetof' keyword.
	KwOffsetof // offsetof
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConfig represents the 'config' keyword.
	KwConfig // config
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwImport represents the 'import' keyword.
	KwImport // import

	// IntLit represents an integer literal (decimal, hex, or scientific).
	IntLit
	// StringLit represents a string literal; Text holds the decoded value.
	StringLit
	// StructDefLit represents a captured C struct/union/enum definition;
	// Text holds the verbatim body including the braces.
	StructDefLit
	// TypeIdent represents a C type name such as 'struct task_struct';
	// Text holds the keyword plus the whitespace-collapsed name.
	TypeIdent
	// MapIdent represents a map identifier: '@name' or bare '@'.
	MapIdent
	// VarIdent represents a scratch variable: '$name'.
	VarIdent
	// ParamLit represents a positional parameter: '$1'.
	ParamLit
	// ParamCountLit represents the parameter count: '$#'.
	ParamCountLit

	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the shl assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shr assign operator token.
	ShrAssign // >>=
	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the division operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// PlusPlus represents the increment operator token.
	PlusPlus // ++
	// MinusMinus represents the decrement operator token.
	MinusMinus // --
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Shl represents the shl operator token.
	Shl // <<
	// Shr represents the shr operator token.
	Shr // >>
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the tilde operator token.
	Tilde // ~
	// AndAnd represents the and and operator token.
	AndAnd // &&
	// OrOr represents the or or operator token.
	OrOr // ||
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// Arrow represents the arrow operator token.
	Arrow // ->
	// LParen represents the left parenthesis operator token.
	LParen // (
	// RParen represents the right parenthesis operator token.
	RParen // )
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
	// LBracket represents the left bracket operator token.
	LBracket // [
	// RBracket represents the right bracket operator token.
	RBracket // ]
	// EndPred represents the '/' that closes a predicate. The lexer
	// emits it instead of Slash when the next significant character is
	// '/' or '{'.
	EndPred // /
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwFor:         "KwFor",
	KwUnroll:      "KwUnroll",
	KwReturn:      "KwReturn",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwSizeof:      "KwSizeof",
	KwOffsetof:    "KwOffsetof",
	KwLet:         "KwLet",
	KwConfig:      "KwConfig",
	KwFn:          "KwFn",
	KwImport:      "KwImport",
	IntLit:        "IntLit",
	StringLit:     "StringLit",
	StructDefLit:  "StructDefLit",
	TypeIdent:     "TypeIdent",
	MapIdent:      "MapIdent",
	VarIdent:      "VarIdent",
	ParamLit:      "ParamLit",
	ParamCountLit: "ParamCountLit",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
	ShlAssign:     "ShlAssign",
	ShrAssign:     "ShrAssign",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	PlusPlus:      "PlusPlus",
	MinusMinus:    "MinusMinus",
	EqEq:          "EqEq",
	Bang:          "Bang",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Shl:           "Shl",
	Shr:           "Shr",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Caret:         "Caret",
	Tilde:         "Tilde",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Question:      "Question",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Comma:         "Comma",
	Dot:           "Dot",
	Arrow:         "Arrow",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	EndPred:       "EndPred",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Invalid"
}
