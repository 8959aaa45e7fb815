package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"unroll":   KwUnroll,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"sizeof":   KwSizeof,
	"offsetof": KwOffsetof,
	"let":      KwLet,
	"config":   KwConfig,
	"fn":       KwFn,
	"import":   KwImport,
}

// LookupKeyword returns the keyword kind for an identifier lexeme.
// Keywords are case-sensitive; only the lowercase forms are recognized.
// Probe names (BEGIN, kprobe, interval, ...) and builtin functions
// (printf, count, hist, ...) are not keywords.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
