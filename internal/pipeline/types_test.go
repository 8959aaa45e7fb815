package pipeline_test

import (
	"testing"
	"time"

	"github.com/fvdlfvdl/bpftrace/internal/pipeline"
)

func TestTimingsAccumulate(t *testing.T) {
	var tm pipeline.Timings
	if tm.Has(pipeline.StageLex) {
		t.Error("fresh Timings should have no stages")
	}
	tm.Add(pipeline.StageLex, 10*time.Millisecond)
	tm.Add(pipeline.StageLex, 5*time.Millisecond)
	tm.Add(pipeline.StageAnalyse, 2*time.Millisecond)

	if got := tm.Duration(pipeline.StageLex); got != 15*time.Millisecond {
		t.Errorf("lex duration = %v, want 15ms summed across files", got)
	}
	if got := tm.Sum(pipeline.StageLex, pipeline.StageAnalyse); got != 17*time.Millisecond {
		t.Errorf("sum = %v, want 17ms", got)
	}
	if tm.Has(pipeline.StageParse) {
		t.Error("parse stage was never recorded")
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan pipeline.Event, 1)
	sink := pipeline.ChannelSink{Ch: ch}
	sink.OnEvent(pipeline.Event{File: "a.bt", Stage: pipeline.StageLex, Status: pipeline.StatusDone})
	evt := <-ch
	if evt.File != "a.bt" || evt.Status != pipeline.StatusDone {
		t.Errorf("event = %+v", evt)
	}

	// A nil channel drops events instead of blocking.
	pipeline.ChannelSink{}.OnEvent(pipeline.Event{})
}
