package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fvdlfvdl/bpftrace/internal/diag"
	"github.com/fvdlfvdl/bpftrace/internal/lexer"
	"github.com/fvdlfvdl/bpftrace/internal/pipeline"
	"github.com/fvdlfvdl/bpftrace/internal/source"
	"github.com/fvdlfvdl/bpftrace/internal/token"
)

// ScriptExt is the extension CheckDir looks for.
const ScriptExt = ".bt"

// CheckOptions configures a directory check.
type CheckOptions struct {
	Options
	// Jobs bounds the per-file parallelism. Zero means GOMAXPROCS.
	Jobs int
	// Sink, when set, receives per-file progress events.
	Sink pipeline.ProgressSink
	// Timings, when set, accumulates per-stage durations after the
	// run finishes.
	Timings *pipeline.Timings
}

// FileResult is one file's outcome from CheckDir.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	Elapsed time.Duration
}

// Ok reports whether the file checked without errors.
func (r FileResult) Ok() bool { return r.Bag != nil && r.Bag.Ok() }

// ListScripts returns the sorted *.bt files under dir.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir tokenizes every script under dir, fanning out across files.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, nil, err
	}
	return CheckFiles(ctx, dir, files, opts)
}

// CheckFiles tokenizes an explicit file list. Results come back in
// input order regardless of completion order. The lexer itself stays
// single-threaded per file; the only parallelism is file granularity.
func CheckFiles(ctx context.Context, baseDir string, files []string, opts CheckOptions) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Loading mutates the FileSet, so it happens up front; the
	// parallel phase only reads.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Sink, pipeline.Event{
				File: path, Stage: pipeline.StageLex, Status: pipeline.StatusWorking,
			})
			start := time.Now()
			results[i] = checkOne(fileSet, path, fileIDs, loadErrors, opts.Options)
			results[i].Elapsed = time.Since(start)

			status := pipeline.StatusDone
			if !results[i].Ok() {
				status = pipeline.StatusError
			}
			emit(opts.Sink, pipeline.Event{
				File: path, Stage: pipeline.StageLex, Status: status,
				Elapsed: results[i].Elapsed,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if opts.Timings != nil {
		for _, r := range results {
			opts.Timings.Add(pipeline.StageLex, r.Elapsed)
		}
	}
	return fileSet, results, nil
}

func checkOne(fileSet *source.FileSet, path string, fileIDs map[string]source.FileID, loadErrors map[string]error, opts Options) FileResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	if loadErr, failed := loadErrors[path]; failed {
		bag.Add(diag.NewError(diag.IOReadFailed, source.Span{},
			"failed to load file: "+loadErr.Error()))
		return FileResult{Path: path, Bag: bag}
	}

	fileID := fileIDs[path]
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		Macros:          opts.Macros,
		ExpansionBudget: opts.ExpansionBudget,
	})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return FileResult{Path: path, FileID: fileID, Tokens: tokens, Bag: bag}
}

func emit(sink pipeline.ProgressSink, evt pipeline.Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
