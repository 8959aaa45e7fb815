package main

import (
	"github.com/spf13/cobra"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long:  `Config resolves defaults, the config file and BPFTRACE_* environment variables and prints the result`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	bag := diag.NewBag(8)
	cfg, _, err := effectiveConfig(cmd, bag)
	if err != nil {
		return err
	}
	if bag.Len() > 0 {
		printDiagnostics(cmd, bag, nil)
	}
	return cfg.Dump(cmd.OutOrStdout())
}
