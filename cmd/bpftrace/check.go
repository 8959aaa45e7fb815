package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/driver"
	"github.com/fvdlfvdl/bpftrace/internal/pipeline"
	"github.com/fvdlfvdl/bpftrace/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path...",
	Short: "Tokenize scripts and report diagnostics",
	Long:  `Check tokenizes the given scripts or directories of scripts and prints every diagnostic found`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Bool("timings", false, "print per-stage timing after the run")
	checkCmd.Flags().Int("jobs", 0, "max files checked in parallel (0 = all CPUs)")
}

// collectScripts expands the argument list: directories contribute
// their *.bt files, plain files pass through as given.
func collectScripts(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := driver.ListScripts(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, arg)
	}
	sort.Strings(files)
	return files, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Flags().GetBool("timings")
	jobs, _ := cmd.Flags().GetInt("jobs")
	uiFlag, _ := cmd.Flags().GetString("ui")
	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	cfgBag := diag.NewBag(8)
	_, macros, err := effectiveConfig(cmd, cfgBag)
	if err != nil {
		return err
	}

	files, err := collectScripts(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no scripts found")
		}
		return nil
	}

	var timings pipeline.Timings
	opts := driver.CheckOptions{
		Options: driverOptions(cmd, macros),
		Jobs:    jobs,
	}
	if showTimings {
		opts.Timings = &timings
	}

	wd, _ := os.Getwd()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var fileSet *source.FileSet
	var results []driver.FileResult
	if shouldUseTUI(uiMode) {
		fileSet, results, err = runCheckWithUI(ctx, wd, files, opts)
	} else {
		fileSet, results, err = driver.CheckFiles(ctx, wd, files, opts)
	}
	if err != nil {
		return err
	}

	failed := 0
	tokenCount := 0
	for _, r := range results {
		tokenCount += len(r.Tokens)
		if !r.Ok() {
			failed++
		}
		printDiagnostics(cmd, r.Bag, fileSet)
	}
	printDiagnostics(cmd, cfgBag, fileSet)

	if !quiet {
		p := message.NewPrinter(language.English)
		p.Fprintf(cmd.OutOrStdout(), "checked %d files, %d tokens\n", len(results), tokenCount)
	}
	if showTimings {
		printStageTimings(cmd.OutOrStdout(), timings)
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d files had errors", failed, len(results))
	}
	return nil
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
