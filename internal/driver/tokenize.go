// Package driver wires the compilation phases together for the CLI:
// file loading, tokenization, analysis and the resource cache.
package driver

import (
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/lexer"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// Options configures a single-file tokenization.
type Options struct {
	// MaxDiagnostics caps the bag. Zero means the default.
	MaxDiagnostics int
	// Macros feeds the lexer's expansion table, usually from --define.
	Macros map[string]string
	// ExpansionBudget overrides the macro re-injection cap when positive.
	ExpansionBudget int
}

const defaultMaxDiagnostics = 64

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return defaultMaxDiagnostics
}

// TokenizeResult bundles everything a caller needs to render tokens
// and diagnostics for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads a script from disk and lexes it to EOF.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fs.Get(fileID), opts), nil
}

// TokenizeSource lexes in-memory content under a virtual file name,
// for stdin and tests.
func TokenizeSource(name string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return tokenizeFile(fs, fs.Get(fileID), opts)
}

func tokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	lx := lexer.New(file, lexer.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		Macros:          opts.Macros,
		ExpansionBudget: opts.ExpansionBudget,
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
