// Package export runs the asynchronous export job.
package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
)

// ErrOutputExists is returned by Start when the output path is taken.
var ErrOutputExists = errors.New("export: output file already exists")

// Exporter starts export jobs on an engine.
type Exporter struct {
	engine ports.ExportEngine
	fs     ports.FileSystem
	logger ports.Logger
}

// NewExporter creates an exporter.
func NewExporter(engine ports.ExportEngine, fs ports.FileSystem, logger ports.Logger) *Exporter {
	return &Exporter{
		engine: engine,
		fs:     fs,
		logger: logger.WithComponent("export"),
	}
}

// Job is one running export. Its result becomes available exactly once.
type Job struct {
	mu     sync.Mutex
	status pipeline.ExportStatus
	result pipeline.ExportResult
	done   chan struct{}
	cancel context.CancelFunc
}

// Status returns the current lifecycle state.
func (j *Job) Status() pipeline.ExportStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Done is closed once the job reached a terminal state.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the terminal result, or false while still running.
func (j *Job) Result() (pipeline.ExportResult, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.status.IsTerminal() {
		return pipeline.ExportResult{}, false
	}
	return j.result, true
}

// Cancel asks the engine to stop. The job still reports its result.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (pipeline.ExportResult, error) {
	select {
	case <-j.done:
		r, _ := j.Result()
		return r, nil
	case <-ctx.Done():
		return pipeline.ExportResult{}, ctx.Err()
	}
}

// Start checks the request and launches the export in the background.
// Precondition failures are returned directly and onComplete is never called.
// Otherwise onComplete, if non-nil, is called exactly once with the terminal
// result after Done is closed.
func (e *Exporter) Start(ctx context.Context, req ports.ExportRequest, onComplete func(pipeline.ExportResult)) (*Job, error) {
	if err := e.check(req); err != nil {
		return nil, err
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		status: pipeline.ExportRunning,
		done:   make(chan struct{}),
		cancel: cancel,
	}

	e.logger.Info("Exporting %s", req.OutputPath)
	go e.run(jobCtx, job, req, onComplete)

	return job, nil
}

func (e *Exporter) check(req ports.ExportRequest) error {
	if req.Composition == nil {
		return fmt.Errorf("export: no composition")
	}
	if err := req.Instruction.Validate(req.Composition); err != nil {
		return err
	}
	if req.OutputPath == "" {
		return fmt.Errorf("export: no output path")
	}
	if !req.Container.Valid() {
		return fmt.Errorf("export: unsupported container %q", req.Container)
	}
	if !req.Preset.Valid() {
		return fmt.Errorf("export: unknown preset %q", req.Preset)
	}

	exists, err := e.fs.Exists(req.OutputPath)
	if err != nil {
		return fmt.Errorf("check output: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrOutputExists, req.OutputPath)
	}

	if err := e.fs.MkdirAll(filepath.Dir(req.OutputPath)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func (e *Exporter) run(ctx context.Context, job *Job, req ports.ExportRequest, onComplete func(pipeline.ExportResult)) {
	defer job.cancel()

	start := time.Now()
	err := e.engine.Export(ctx, req)
	result := pipeline.ExportResult{Elapsed: time.Since(start)}

	switch {
	case err == nil:
		size, sizeErr := e.fs.Size(req.OutputPath)
		if sizeErr != nil {
			result.Status = pipeline.ExportFailed
			result.Err = pipeline.NewStageError(pipeline.ErrExport, "stat output", sizeErr)
			break
		}
		result.Status = pipeline.ExportSucceeded
		result.OutputPath = req.OutputPath
		result.FileSize = size
		e.logger.Info("Export finished in %s (%d bytes)", result.Elapsed.Round(time.Millisecond), size)
	case ctx.Err() != nil:
		result.Status = pipeline.ExportCancelled
		result.Err = pipeline.NewStageError(pipeline.ErrExport, "export video", ctx.Err())
		e.logger.Warn("Export cancelled")
	default:
		result.Status = pipeline.ExportFailed
		result.Err = pipeline.NewStageError(pipeline.ErrExport, "export video", err)
		e.logger.Error("Export failed: %v", err)
	}

	if result.Status != pipeline.ExportSucceeded {
		e.discard(req.OutputPath)
	}

	job.mu.Lock()
	job.status = result.Status
	job.result = result
	job.mu.Unlock()
	close(job.done)

	if onComplete != nil {
		onComplete(result)
	}
}

func (e *Exporter) discard(path string) {
	exists, err := e.fs.Exists(path)
	if err != nil || !exists {
		return
	}
	if err := e.fs.Remove(path); err != nil {
		e.logger.Warn("Failed to remove partial output %s: %v", path, err)
	}
}

// Stage runs an export job to completion.
type Stage struct {
	exporter *Exporter
}

// NewStage creates a new export stage.
func NewStage(exporter *Exporter) *Stage {
	return &Stage{
		exporter: exporter,
	}
}

// Execute starts the export and waits for its terminal result.
// A failed or cancelled job is reported in the result, not as an error;
// the error return is reserved for requests that could not start.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	job, err := s.exporter.Start(ctx, ports.ExportRequest{
		Composition:      input.Composition,
		Instruction:      input.Instruction,
		RenderConfig:     input.RenderConfig,
		OutputPath:       input.OutputPath,
		Container:        input.Container,
		Preset:           input.Preset,
		NetworkOptimized: input.NetworkOptimized,
	}, nil)
	if err != nil {
		return pipeline.ExportResult{}, pipeline.NewStageError(pipeline.ErrExport, "start export", err)
	}

	<-job.Done()
	result, _ := job.Result()
	return result, nil
}
