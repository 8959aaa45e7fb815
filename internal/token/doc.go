// Package token defines the lexical token kinds of the tracing script language.
// Invariants:
//   - Token.Span covers the source extent the lexer consumed for the token,
//     measured in lines and columns; consecutive spans tile their line.
//   - Token.Text is the raw lexeme for most kinds, but carries the decoded
//     value for StringLit, the whitespace-collapsed name for TypeIdent, and
//     the verbatim captured body for StructDefLit.
//   - Map and variable sigils stay in the text: '@counts', '$x', '$1', '$#'.
//   - Comments and whitespace produce no tokens at all.
//   - Builtin function names (printf, count, hist, kstack, ...) and builtin
//     variables (pid, comm, retval, ...) are identifiers. They are recognized
//     by the semantic layer, not the lexer.
package token
