package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fvdlfvdl/bpftrace/internal/config"
	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/diagfmt"
	"github.com/fvdlfvdl/bpftrace/internal/driver"
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

// effectiveConfig builds the runtime configuration from defaults, the
// config file and the environment, and collects the macro table from
// the file's [macros] section plus --define flags. A script's own
// config block applies later, during analysis.
func effectiveConfig(cmd *cobra.Command, bag *diag.Bag) (*config.Config, map[string]string, error) {
	cfg := config.New()
	r := diag.BagReporter{Bag: bag}

	var macros map[string]string
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	if configPath != "" {
		m, err := config.LoadFile(cfg, configPath, r)
		if err != nil {
			return nil, nil, err
		}
		macros = m
	} else if wd, err := os.Getwd(); err == nil {
		m, err := config.LoadFileIfFound(cfg, wd, r)
		if err != nil {
			return nil, nil, err
		}
		macros = m
	}

	config.LoadEnv(cfg, r)

	if macros == nil {
		macros = make(map[string]string)
	}
	defines, _ := cmd.Root().PersistentFlags().GetStringArray("define")
	for _, d := range defines {
		name, value, found := strings.Cut(d, "=")
		if name == "" {
			return nil, nil, fmt.Errorf("invalid --define %q (expected NAME=VALUE)", d)
		}
		if !found {
			// A bare name defines to 1, like a C preprocessor -D.
			value = "1"
		}
		macros[name] = value
	}
	return cfg, macros, nil
}

func driverOptions(cmd *cobra.Command, macros map[string]string) driver.Options {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Macros:         macros,
	}
}

// printDiagnostics renders a bag to stderr, sorted, honoring --color.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		PathMode:  "auto",
		ShowNotes: true,
	})
}
