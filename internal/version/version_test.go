package version

import (
	"regexp"
	"strings"
	"testing"
)

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.]+)?$`)

func TestPlainIsSemver(t *testing.T) {
	got := Plain()
	if !semverRe.MatchString(got) {
		t.Fatalf("Plain() = %q, not a semantic version", got)
	}
}

func TestPlainHasNoEscapes(t *testing.T) {
	if strings.ContainsRune(Plain(), '\x1b') {
		t.Fatalf("Plain() = %q contains escape sequences", Plain())
	}
}

func TestVersionMatchesPlain(t *testing.T) {
	// Version may carry ANSI codes around each segment, but stripping
	// them must yield exactly the plain form.
	stripped := stripEscapes(Version)
	if stripped != Plain() {
		t.Fatalf("stripped Version = %q, want %q", stripped, Plain())
	}
}

func TestLdflagsOverride(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Fatalf("Version = %q after override, want 1.2.3", Version)
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripEscapes(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
