package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.FgCyan)
)

func severityLabel(sev diag.Severity, colored bool) string {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = errorColor
	case diag.SevWarning:
		c = warningColor
	default:
		c = infoColor
	}
	if !colored {
		return sev.String()
	}
	return c.Sprint(sev.String())
}

// Pretty renders every diagnostic in the bag in source order. Callers
// sort the bag first. Each entry prints as
//
//	stdin:1:12-23: ERROR: Unrecognized config variable: BAD_CONFIG
//	config = { BAD_CONFIG=1 } BEGIN { }
//	           ~~~~~~~~~~~
//
// with the offending source line quoted and the span underlined.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeEntry(w, fs, d.Primary, severityLabel(d.Severity, opts.Color), d.Message, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				label := "NOTE"
				if opts.Color {
					label = noteColor.Sprint(label)
				}
				writeEntry(w, fs, n.Span, label, n.Msg, opts)
			}
		}
	}
}

func writeEntry(w io.Writer, fs *source.FileSet, sp source.Span, label, msg string, opts PrettyOpts) {
	// Config-file and environment diagnostics carry no script
	// location; they render without one.
	if fs == nil || sp.Line == 0 {
		fmt.Fprintf(w, "%s: %s\n", label, msg)
		return
	}
	file := fs.Get(sp.File)
	path := file.Path
	if opts.PathMode != "" {
		path = file.FormatPath(opts.PathMode, fs.BaseDir())
	}
	fmt.Fprintf(w, "%s:%s: %s: %s\n", path, sp.String(), label, msg)

	line := file.GetLine(sp.Line)
	if line == "" {
		return
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, underline(line, sp))
}

// underline builds the marker row under a quoted source line: blanks
// spanning the display width of everything before the span, then one
// tilde per display column the span occupies.
func underline(line string, sp source.Span) string {
	start := int(sp.Col) - 1
	if start > len(line) {
		start = len(line)
	}
	end := start + int(sp.Len)
	if end > len(line) {
		end = len(line)
	}
	pad := displayWidth(line[:start])
	width := displayWidth(line[start:end])
	if width == 0 {
		width = 1
	}
	return strings.Repeat(" ", pad) + strings.Repeat("~", width)
}

// displayWidth measures terminal columns, composing combining marks
// first so decomposed input does not overcount.
func displayWidth(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}
