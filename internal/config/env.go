package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/numlit"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// LoadEnv applies BPFTRACE_* environment variables. Only known option
// names are consulted; the rest of the environment belongs to other
// programs and is ignored. Malformed values are diagnostics without a
// span, since there is no script location to point at.
func LoadEnv(cfg *Config, r diag.Reporter) {
	loadEnvFrom(cfg, os.LookupEnv, r)
}

func loadEnvFrom(cfg *Config, lookup func(string) (string, bool), r diag.Reporter) {
	for key := range intDefaults {
		name := envName(key)
		raw, ok := lookup(name)
		if !ok {
			continue
		}
		v, err := numlit.ParseSigned(raw)
		if err != nil {
			diag.ReportError(r, diag.CfgInvalidType, source.Span{},
				fmt.Sprintf("Invalid type for %s. Type: string. Expected Type: int", name)).Emit()
			continue
		}
		if v < 0 {
			diag.ReportError(r, diag.CfgBadValue, source.Span{},
				fmt.Sprintf("%s must be a non-negative integer", name)).Emit()
			continue
		}
		cfg.SetInt(key, v, SourceEnv)
	}

	if raw, ok := lookup(envName(KeyStackMode)); ok {
		mode, ok := types.ParseStackMode(raw)
		if !ok {
			diag.ReportError(r, diag.CfgBadValue, source.Span{},
				fmt.Sprintf("Invalid value for %s: %s. Valid values are: bpftrace, perf, raw",
					envName(KeyStackMode), raw)).Emit()
			return
		}
		cfg.SetStackMode(mode, SourceEnv)
	}
}

// envName is the environment variable spelling of a canonical key.
func envName(key Key) string {
	return "BPFTRACE_" + strings.ToUpper(string(key))
}
