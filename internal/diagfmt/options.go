// Package diagfmt renders diagnostics and token dumps for the CLI.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	// Color enables ANSI colors on the severity label.
	Color bool
	// PathMode is handed to File.FormatPath: "auto", "absolute",
	// "relative" or "basename".
	PathMode string
	// ShowNotes renders secondary locations under their diagnostic.
	ShowNotes bool
}
