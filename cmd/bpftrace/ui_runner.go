package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fvdlfvdl/bpftrace/internal/driver"
	"github.com/fvdlfvdl/bpftrace/internal/pipeline"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI drives CheckFiles behind the interactive progress
// model: the driver runs in its own goroutine, feeding events through
// a channel the model drains.
func runCheckWithUI(ctx context.Context, baseDir string, files []string, opts driver.CheckOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		fs, results, err := driver.CheckFiles(ctx, baseDir, files, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking scripts", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if timings.Has(pipeline.StageLex) {
		fmt.Fprintf(out, "lexed %.1f ms\n", toMillis(timings.Duration(pipeline.StageLex)))
	}
	if timings.Has(pipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(pipeline.StageParse)))
	}
	if timings.Has(pipeline.StageAnalyse) {
		fmt.Fprintf(out, "analysed %.1f ms\n", toMillis(timings.Duration(pipeline.StageAnalyse)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
