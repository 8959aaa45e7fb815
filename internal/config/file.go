package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// FileName is the config file looked for near the working directory.
const FileName = "bpftrace.toml"

// fileSchema is the on-disk layout: an [options] table of known keys
// and a [macros] table feeding the lexer's macro table.
type fileSchema struct {
	Options map[string]any    `toml:"options"`
	Macros  map[string]string `toml:"macros"`
}

// Find walks up from dir looking for FileName. Returns the path of
// the closest one, or ok=false when no directory up to the root has
// it.
func Find(dir string) (string, bool) {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadFile applies a config file's [options] with file precedence and
// returns its [macros]. Unknown or mistyped options are diagnostics,
// not errors; the error return is for unreadable or unparsable files.
func LoadFile(cfg *Config, path string, r diag.Reporter) (map[string]string, error) {
	var fc fileSchema
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	for name, raw := range fc.Options {
		applyFileOption(cfg, name, raw, r)
	}
	return fc.Macros, nil
}

// LoadFileIfFound is LoadFile for an auto-discovered file; absence is
// not an error.
func LoadFileIfFound(cfg *Config, dir string, r diag.Reporter) (map[string]string, error) {
	path, ok := Find(dir)
	if !ok {
		return nil, nil
	}
	macros, err := LoadFile(cfg, path, r)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return macros, err
}

func applyFileOption(cfg *Config, name string, raw any, r diag.Reporter) {
	key, known := Canonicalize(name)
	if !known {
		diag.ReportError(r, diag.CfgUnknownVariable, source.Span{},
			fmt.Sprintf("Unrecognized config variable: %s", name)).Emit()
		return
	}

	if key == KeyStackMode {
		s, ok := raw.(string)
		if !ok {
			diag.ReportError(r, diag.CfgInvalidType, source.Span{},
				fmt.Sprintf("Invalid type for %s. Type: int. Expected Type: string", name)).Emit()
			return
		}
		mode, ok := types.ParseStackMode(s)
		if !ok {
			diag.ReportError(r, diag.CfgBadValue, source.Span{},
				fmt.Sprintf("Invalid value for %s: %s. Valid values are: bpftrace, perf, raw", name, s)).Emit()
			return
		}
		cfg.SetStackMode(mode, SourceFile)
		return
	}

	v, ok := raw.(int64)
	if !ok {
		diag.ReportError(r, diag.CfgInvalidType, source.Span{},
			fmt.Sprintf("Invalid type for %s. Type: string. Expected Type: int", name)).Emit()
		return
	}
	if v < 0 {
		diag.ReportError(r, diag.CfgBadValue, source.Span{},
			fmt.Sprintf("%s must be a non-negative integer", name)).Emit()
		return
	}
	cfg.SetInt(key, v, SourceFile)
}

// Dump writes the effective configuration as TOML, the same shape
// LoadFile reads.
func (c *Config) Dump(w io.Writer) error {
	options := make(map[string]any, len(c.ints)+1)
	for k, e := range c.ints {
		options[string(k)] = e.val
	}
	options[string(KeyStackMode)] = c.stackMode.String()
	return toml.NewEncoder(w).Encode(map[string]any{"options": options})
}
