// Package resource computes the runtime resources a checked program
// needs before any code is generated: one entry per aggregation map,
// the worst-case formatted-argument buffer, and the set of distinct
// stack capture layouts. The result serializes so a privileged build
// step can hand it to a later run.
package resource

import (
	"fmt"

	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// MapKind is the aggregation function backing a map.
type MapKind uint8

const (
	// KindNone marks an unrecorded map slot.
	KindNone MapKind = iota
	// KindCount tallies invocations.
	KindCount
	// KindSum accumulates its argument.
	KindSum
	// KindAvg tracks a running average.
	KindAvg
	// KindMin keeps the smallest argument seen.
	KindMin
	// KindMax keeps the largest argument seen.
	KindMax
	// KindStats keeps count, average and total together.
	KindStats
	// KindHist is a power-of-two histogram.
	KindHist
	// KindLhist is a linear histogram.
	KindLhist
)

var kindNames = map[MapKind]string{
	KindCount: "count",
	KindSum:   "sum",
	KindAvg:   "avg",
	KindMin:   "min",
	KindMax:   "max",
	KindStats: "stats",
	KindHist:  "hist",
	KindLhist: "lhist",
}

func (k MapKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "none"
}

// KindOf resolves an aggregation call name. ok is false for calls
// that are not aggregations.
func KindOf(fn string) (MapKind, bool) {
	for k, name := range kindNames {
		if name == fn {
			return k, true
		}
	}
	return KindNone, false
}

// MapShape holds the arguments that fix a map's bucket layout. Only
// hist uses Bits; only lhist uses Min, Max and Step.
type MapShape struct {
	Bits uint64 `msgpack:"bits"`
	Min  int64  `msgpack:"min"`
	Max  int64  `msgpack:"max"`
	Step int64  `msgpack:"step"`
}

// MapInfo is the recorded kind and shape of one aggregation map.
type MapInfo struct {
	Kind  MapKind  `msgpack:"kind"`
	Shape MapShape `msgpack:"shape"`
}

// Signature renders the info the way a script would write it, for
// diagnostics: "hist(arg, 2)", "lhist(arg, 0, 100, 10)", "count()".
func (mi MapInfo) Signature() string {
	switch mi.Kind {
	case KindHist:
		return fmt.Sprintf("hist(arg, %d)", mi.Shape.Bits)
	case KindLhist:
		return fmt.Sprintf("lhist(arg, %d, %d, %d)", mi.Shape.Min, mi.Shape.Max, mi.Shape.Step)
	case KindCount:
		return "count()"
	default:
		return mi.Kind.String() + "(arg)"
	}
}

// Resources is everything later phases need to size runtime state.
type Resources struct {
	// Maps holds one entry per aggregation map identifier, sigil
	// included, so the anonymous map is "@".
	Maps map[string]MapInfo `msgpack:"maps"`
	// MaxFmtstringArgsSize is the worst case, over all call sites, of
	// the formatted-argument buffer. Zero when a positive
	// on_stack_limit defers sizing to code generation.
	MaxFmtstringArgsSize uint64 `msgpack:"max_fmtstring_args_size"`
	// StackTypes is the set of distinct stack capture layouts, keyed
	// by their canonical "mode:limit" rendering.
	StackTypes map[string]types.StackType `msgpack:"stack_types"`
}

// NewResources returns an empty result.
func NewResources() *Resources {
	return &Resources{
		Maps:       make(map[string]MapInfo),
		StackTypes: make(map[string]types.StackType),
	}
}
