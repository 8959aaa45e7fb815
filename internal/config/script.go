package config

import (
	"fmt"

	"github.com/fvdlfvdl/bpftrace/internal/ast"
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/numlit"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// AnalyseScript applies a script's config block to the store. Every
// problem is a diagnostic on the entry's span; valid entries are still
// applied, so one bad key does not hide the rest.
func AnalyseScript(cfg *Config, entries []ast.ConfigEntry, r diag.Reporter) {
	for _, e := range entries {
		applyScriptEntry(cfg, e, r)
	}
}

func applyScriptEntry(cfg *Config, e ast.ConfigEntry, r diag.Reporter) {
	key, known := Canonicalize(e.Key)
	if !known {
		if IsEnvOnly(e.Key) {
			diag.ReportError(r, diag.CfgEnvOnly, e.Sp,
				fmt.Sprintf("%s can only be set as an environment variable", e.Key)).Emit()
			return
		}
		diag.ReportError(r, diag.CfgUnknownVariable, e.Sp,
			fmt.Sprintf("Unrecognized config variable: %s", e.Key)).Emit()
		return
	}

	if key == KeyStackMode {
		// Accepts both bare words (perf) and quoted strings ("perf").
		if e.ValueKind == ast.ConfigInt {
			diag.ReportError(r, diag.CfgInvalidType, e.Sp,
				fmt.Sprintf("Invalid type for %s. Type: int. Expected Type: string", e.Key)).Emit()
			return
		}
		mode, ok := types.ParseStackMode(e.Value)
		if !ok {
			diag.ReportError(r, diag.CfgBadValue, e.Sp,
				fmt.Sprintf("Invalid value for %s: %s. Valid values are: bpftrace, perf, raw",
					e.Key, e.Value)).Emit()
			return
		}
		cfg.SetStackMode(mode, SourceScript)
		return
	}

	if e.ValueKind != ast.ConfigInt {
		diag.ReportError(r, diag.CfgInvalidType, e.Sp,
			fmt.Sprintf("Invalid type for %s. Type: string. Expected Type: int", e.Key)).Emit()
		return
	}
	v, err := numlit.ParseSigned(e.Value)
	if err != nil {
		diag.ReportError(r, diag.CfgBadValue, e.Sp, err.Error()).Emit()
		return
	}
	if v < 0 {
		diag.ReportError(r, diag.CfgBadValue, e.Sp,
			fmt.Sprintf("%s must be a non-negative integer", e.Key)).Emit()
		return
	}
	cfg.SetInt(key, v, SourceScript)
}
