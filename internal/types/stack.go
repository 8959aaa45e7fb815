package types

import "fmt"

// StackMode selects the format a captured call stack is rendered in.
type StackMode uint8

const (
	// ModeBpftrace is the default symbolized one-frame-per-line format.
	ModeBpftrace StackMode = iota
	// ModeRaw prints unsymbolized addresses.
	ModeRaw
	// ModePerf mimics the perf script output format.
	ModePerf
)

func (m StackMode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModePerf:
		return "perf"
	default:
		return "bpftrace"
	}
}

// ParseStackMode resolves a mode name from a script or config value.
func ParseStackMode(s string) (StackMode, bool) {
	switch s {
	case "bpftrace":
		return ModeBpftrace, true
	case "raw":
		return ModeRaw, true
	case "perf":
		return ModePerf, true
	}
	return ModeBpftrace, false
}

// DefaultStackLimit is the frame cap used when a stack builtin is
// called without one.
const DefaultStackLimit = 127

// StackType identifies one stack capture layout. Each distinct
// (mode, limit) pair needs its own backing map, so this value is the
// map key downstream.
type StackType struct {
	Mode  StackMode
	Limit uint64
}

// DefaultStackType is what a bare kstack/ustack requests.
func DefaultStackType() StackType {
	return StackType{Mode: ModeBpftrace, Limit: DefaultStackLimit}
}

// String renders the canonical "mode:limit" form used as a map key
// and in display output.
func (st StackType) String() string {
	return fmt.Sprintf("%s:%d", st.Mode, st.Limit)
}
