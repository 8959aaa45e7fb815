package driver

import (
	"github.com/fvdlfvdl/bpftrace/internal/ast"
	"github.com/fvdlfvdl/bpftrace/internal/config"
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/resource"
)

// Analyse runs the post-parse passes over a typed program: the
// script's config block is applied first so the resource analyser
// sees the effective settings, then resources are computed. All
// problems land in bag.
func Analyse(prog *ast.Program, cfg *config.Config, bag *diag.Bag) *resource.Resources {
	r := diag.BagReporter{Bag: bag}
	config.AnalyseScript(cfg, prog.Config, r)
	return resource.Analyse(prog, cfg, r)
}
