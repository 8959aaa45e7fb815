package diag

import (
	"strings"
	"testing"

	"github.com/fvdlfvdl/bpftrace/internal/source"
)

func spanAt(line, col, length uint32) source.Span {
	return source.Span{File: 0, Line: line, Col: col, Len: length}
}

func TestBagCapAndOk(t *testing.T) {
	b := NewBag(2)

	if !b.Ok() {
		t.Error("empty bag must be Ok")
	}

	if !b.Add(New(SevWarning, CfgInfo, spanAt(1, 1, 1), "w")) {
		t.Error("first Add must succeed")
	}
	if !b.Ok() {
		t.Error("warnings alone must keep the bag Ok")
	}
	if !b.HasWarnings() {
		t.Error("HasWarnings must see the warning")
	}

	if !b.Add(NewError(LexUnknownChar, spanAt(1, 2, 1), "e")) {
		t.Error("second Add must succeed")
	}
	if b.Ok() {
		t.Error("bag with an error must not be Ok")
	}
	if !b.HasErrors() {
		t.Error("HasErrors must see the error")
	}

	// Cap reached: further adds are dropped.
	if b.Add(NewError(LexUnknownChar, spanAt(1, 3, 1), "dropped")) {
		t.Error("Add past the cap must return false")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, ResMapShapeConflict, spanAt(2, 1, 3), "later line"))
	b.Add(NewError(LexBadNumber, spanAt(1, 9, 2), "same spot, error"))
	b.Add(New(SevInfo, LexInfo, spanAt(1, 9, 2), "same spot, info"))
	b.Add(NewError(LexUnknownChar, spanAt(1, 2, 1), "first"))

	b.Sort()

	items := b.Items()
	got := make([]string, 0, len(items))
	for _, d := range items {
		got = append(got, d.Message)
	}
	want := []string{"first", "same spot, error", "same spot, info", "later line"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort order = %v, want %v", got, want)
		}
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexBadEscape, spanAt(1, 4, 2), "bad escape"))

	c := NewBag(2)
	c.Add(NewError(LexBadEscape, spanAt(1, 4, 2), "bad escape"))
	c.Add(New(SevWarning, CfgBadValue, spanAt(3, 1, 5), "odd value"))

	a.Merge(c)
	if a.Len() != 3 {
		t.Fatalf("after Merge Len() = %d, want 3", a.Len())
	}

	a.Dedup()
	if a.Len() != 2 {
		t.Fatalf("after Dedup Len() = %d, want 2", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{LexUnterminatedString, "LEX1002"},
		{ResMapKindConflict, "RES3001"},
		{CfgUnknownVariable, "CFG4001"},
		{IOFileNotFound, "IO5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.id)
		}
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	b := ReportError(r, ResMapKindConflict, spanAt(2, 5, 1), "conflict").
		WithNote(spanAt(1, 5, 1), "first defined here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit twice stored %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "first defined here" {
		t.Fatalf("note not carried: %+v", d.Notes)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	sp := spanAt(1, 1, 3)
	r.Report(ResMapShapeConflict, SevError, sp, "same", nil)
	r.Report(ResMapShapeConflict, SevError, sp, "same", nil)
	r.Report(ResMapShapeConflict, SevError, sp, "different message", nil)

	if bag.Len() != 2 {
		t.Fatalf("DedupReporter stored %d, want 2", bag.Len())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("probe.bt", []byte("BEGIN { }\n"))

	diags := []Diagnostic{
		NewError(LexUnterminatedString, source.Span{File: id, Line: 1, Col: 9, Len: 1}, "unterminated string"),
	}

	out := FormatShortDiagnostics(diags, fs, false)
	want := "error LEX1002 probe.bt:1:9 unterminated string"
	if out != want {
		t.Errorf("FormatShortDiagnostics = %q, want %q", out, want)
	}
}

func TestFormatShortDiagnosticsNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("probe.bt", []byte("@ = hist(1, 1);\n@ = hist(1, 2);\n"))

	d := NewError(ResMapShapeConflict, source.Span{File: id, Line: 2, Col: 5, Len: 10}, "conflicting hist arguments").
		WithNote(source.Span{File: id, Line: 1, Col: 5, Len: 10}, "first defined here")

	out := FormatShortDiagnostics([]Diagnostic{d}, fs, true)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "note RES3002 probe.bt:1:5") {
		t.Errorf("notes must sort before the error by position, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "error RES3002 probe.bt:2:5") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}
