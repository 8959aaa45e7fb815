// Package ast defines the program tree handed to resource analysis: a
// plain pointer tree whose expressions carry the resolved type and
// span the semantic layer attached. The tree is read-only to every
// pass in this module.
package ast

import (
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// Node is anything with a source location.
type Node interface {
	Span() source.Span
}

// Program is the root: an optional config block, user-defined
// subprograms, and probes.
type Program struct {
	Config   []ConfigEntry
	Subprogs []*Subprog
	Probes   []*Probe
}

func (p *Program) Span() source.Span {
	if len(p.Probes) > 0 {
		return p.Probes[0].Sp
	}
	if len(p.Subprogs) > 0 {
		return p.Subprogs[0].Sp
	}
	return source.Span{}
}

// ConfigValueKind discriminates how a config value was written.
type ConfigValueKind uint8

const (
	// ConfigInt is an integer literal value.
	ConfigInt ConfigValueKind = iota
	// ConfigString is a quoted string value.
	ConfigString
	// ConfigIdent is a bare word value such as 'perf'.
	ConfigIdent
)

// ConfigEntry is one 'KEY=value' setting from the script's config
// block. Sp covers the whole entry, which is what diagnostics
// underline.
type ConfigEntry struct {
	Key       string
	ValueKind ConfigValueKind
	Value     string // raw value text
	Sp        source.Span
}

func (e ConfigEntry) Span() source.Span { return e.Sp }

// Probe is one attach-point list with a predicate and action block.
type Probe struct {
	AttachPoints []string
	Predicate    Expression // nil when absent
	Body         *Block
	Sp           source.Span
}

func (p *Probe) Span() source.Span { return p.Sp }

// Subprog is a user-defined function. Its body draws from the same
// resource pool as probe bodies and is analysed identically.
type Subprog struct {
	Name       string
	ReturnType types.Type
	Body       *Block
	Sp         source.Span
}

func (s *Subprog) Span() source.Span { return s.Sp }
