package checkrun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shapekit/internal/trace"
)

// ErrNoDecoder is returned when a request carries no decoder.
var ErrNoDecoder = errors.New("checkrun: missing decoder")

// Run decodes every file of req concurrently. Results keep the order of
// req.Files. Per-file problems are reported in FileResult; the returned error
// is reserved for cancellation and invalid requests.
func Run(ctx context.Context, req *Request) ([]FileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil || req.Decoder == nil {
		return nil, ErrNoDecoder
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	emit(req.Progress, queued(req.Files)...)

	tracer := trace.FromContext(ctx)
	parent := trace.ParentFromContext(ctx)
	results := make([]FileResult, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(req.Files))))
	for i, path := range req.Files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			span := trace.Begin(tracer, trace.ScopeCheck, "check:"+path, parent)
			res := checkFile(path, req)
			results[i] = res
			switch {
			case res.Err != nil:
				span.Fail().End(res.Err.Error())
			case res.Result.IsFailure():
				span.Fail().End(res.Result.Outcome().String())
			default:
				span.End(res.Result.Outcome().String())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkFile(path string, req *Request) FileResult {
	start := time.Now()
	emit(req.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	value, err := readValue(path)
	if err != nil {
		emit(req.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return FileResult{Path: path, Err: err, Elapsed: time.Since(start)}
	}
	emit(req.Progress, Event{File: path, Stage: StageDecode, Status: StatusWorking})
	res := req.Decoder(value)
	elapsed := time.Since(start)
	status := StatusDone
	switch {
	case res.IsFailure():
		status = StatusError
	case res.IsWarning():
		status = StatusWarning
	}
	emit(req.Progress, Event{File: path, Stage: StageDecode, Status: status, Elapsed: elapsed})
	return FileResult{Path: path, Result: res, Elapsed: elapsed}
}

// readValue parses a JSON file keeping numbers as json.Number.
func readValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", path, err)
	}
	return v, nil
}

func queued(files []string) []Event {
	out := make([]Event, len(files))
	for i, f := range files {
		out[i] = Event{File: f, Stage: StageRead, Status: StatusQueued}
	}
	return out
}

func emit(sink ProgressSink, events ...Event) {
	if sink == nil {
		return
	}
	for _, ev := range events {
		sink.OnEvent(ev)
	}
}
