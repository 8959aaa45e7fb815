package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/diagfmt"
	"github.com/fvdlfvdl/bpftrace/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.bt|-",
	Short: "Tokenize a bpftrace script",
	Long:  `Tokenize breaks a script into its tokens; '-' reads from stdin`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	bag := diag.NewBag(8)
	_, macros, err := effectiveConfig(cmd, bag)
	if err != nil {
		return err
	}
	opts := driverOptions(cmd, macros)

	var result *driver.TokenizeResult
	if args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result = driver.TokenizeSource("stdin", src, opts)
	} else {
		result, err = driver.Tokenize(args[0], opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}
	result.Bag.Merge(bag)

	if result.Bag.Len() > 0 {
		printDiagnostics(cmd, result.Bag, result.FileSet)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
