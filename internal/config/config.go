// Package config holds the typed runtime configuration consumed by
// later compilation phases. Values arrive from four places; a
// lower-precedence source never overwrites a higher one:
//
//	defaults < config file < script config block < environment
package config

import (
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// Source identifies where a value came from, ordered by precedence.
type Source uint8

const (
	// SourceDefault is the built-in default.
	SourceDefault Source = iota
	// SourceFile is the bpftrace.toml config file.
	SourceFile
	// SourceScript is the script's config block.
	SourceScript
	// SourceEnv is a BPFTRACE_* environment variable.
	SourceEnv
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceScript:
		return "script"
	case SourceEnv:
		return "environment"
	default:
		return "default"
	}
}

// Key is the canonical (lowercase) name of a config option.
type Key string

const (
	// KeyOnStackLimit switches format-argument buffers from exact
	// sizing to an externally bounded strategy when positive.
	KeyOnStackLimit Key = "on_stack_limit"
	// KeyMaxStrlen is the byte size of string scratch buffers.
	KeyMaxStrlen Key = "max_strlen"
	// KeyMaxMapKeys caps entries per aggregation map.
	KeyMaxMapKeys Key = "max_map_keys"
	// KeyLogSize is the trace output buffer size in bytes.
	KeyLogSize Key = "log_size"
	// KeyMaxProbes caps the number of attached probes.
	KeyMaxProbes Key = "max_probes"
	// KeyStackMode is the default stack capture mode.
	KeyStackMode Key = "stack_mode"
)

var intDefaults = map[Key]int64{
	KeyOnStackLimit: 0,
	KeyMaxStrlen:    64,
	KeyMaxMapKeys:   4096,
	KeyLogSize:      1000000,
	KeyMaxProbes:    1024,
}

// envOnly names options a script's config block must not set.
var envOnly = map[string]bool{
	"max_ast_nodes": true,
}

type intEntry struct {
	val int64
	src Source
}

// Config is the typed store. The zero value is not usable; construct
// with New.
type Config struct {
	ints         map[Key]intEntry
	stackMode    types.StackMode
	stackModeSrc Source
}

// New returns a Config populated with defaults.
func New() *Config {
	c := &Config{
		ints:      make(map[Key]intEntry, len(intDefaults)),
		stackMode: types.ModeBpftrace,
	}
	for k, v := range intDefaults {
		c.ints[k] = intEntry{val: v, src: SourceDefault}
	}
	return c
}

// SetInt records an integer option from the given source. It reports
// whether the value was applied; a value already set by an equal or
// higher-precedence source wins and the new one is dropped.
func (c *Config) SetInt(key Key, v int64, src Source) bool {
	cur, ok := c.ints[key]
	if !ok {
		return false
	}
	if cur.src > src {
		return false
	}
	c.ints[key] = intEntry{val: v, src: src}
	return true
}

// GetInt returns the effective value of an integer option.
func (c *Config) GetInt(key Key) int64 {
	return c.ints[key].val
}

// SourceOf reports which source supplied the effective value.
func (c *Config) SourceOf(key Key) Source {
	if key == KeyStackMode {
		return c.stackModeSrc
	}
	return c.ints[key].src
}

// SetStackMode records the default stack mode, same precedence rules
// as SetInt.
func (c *Config) SetStackMode(m types.StackMode, src Source) bool {
	if c.stackModeSrc > src {
		return false
	}
	c.stackMode = m
	c.stackModeSrc = src
	return true
}

// StackMode returns the effective default stack capture mode.
func (c *Config) StackMode() types.StackMode {
	return c.stackMode
}

// IsIntKey reports whether key names an integer option.
func IsIntKey(key Key) bool {
	_, ok := intDefaults[key]
	return ok
}

// Canonicalize maps a name as written (script key, env variable,
// file key) to its canonical option key: the BPFTRACE_ prefix is
// dropped and the rest lowercased. ok is false for unknown options.
func Canonicalize(name string) (Key, bool) {
	k := Key(strings.ToLower(strings.TrimPrefix(name, "BPFTRACE_")))
	if IsIntKey(k) || k == KeyStackMode {
		return k, true
	}
	return "", false
}

// IsEnvOnly reports whether the name may only be set through the
// environment.
func IsEnvOnly(name string) bool {
	return envOnly[strings.ToLower(strings.TrimPrefix(name, "BPFTRACE_"))]
}
