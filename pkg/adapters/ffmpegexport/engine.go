// Package ffmpegexport renders a composition with an ffmpeg subprocess.
package ffmpegexport

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/adapters/nullsink"
	"github.com/user/clipmerge/pkg/ports"
)

// maxStderr bounds how much ffmpeg output is kept in error messages.
const maxStderr = 2048

// Engine implements ports.ExportEngine.
type Engine struct {
	ffmpegPath string
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
}

// New creates an Engine. An empty ffmpegPath discovers ffmpeg via fftools.
func New(ffmpegPath string, fs ports.FileSystem, sink ports.DebugSink, log ports.Logger) *Engine {
	if sink == nil {
		sink = nullsink.New()
	}
	if log == nil {
		log = logger.NewNoop()
	}
	return &Engine{
		ffmpegPath: ffmpegPath,
		fs:         fs,
		sink:       sink,
		logger:     log.WithComponent("ffmpeg"),
	}
}

// Export renders req to req.OutputPath and blocks until ffmpeg exits.
// An existing output is never overwritten; a partially written one is
// removed on any failure.
func (e *Engine) Export(ctx context.Context, req ports.ExportRequest) error {
	plan, err := BuildPlan(req)
	if err != nil {
		return err
	}

	if e.fs != nil {
		exists, err := e.fs.Exists(req.OutputPath)
		if err != nil {
			return fmt.Errorf("check output: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: output %s already exists", ErrInvalidRequest, req.OutputPath)
		}
	}

	if e.sink.Enabled() {
		if err := e.sink.SaveFilterGraph([]byte(describe(plan))); err != nil {
			e.logger.Warn("Failed to save filter graph: %v", err)
		}
	}

	bin := e.ffmpegPath
	if bin == "" {
		bin, err = fftools.FindFFmpeg()
		if err != nil {
			return err
		}
	}

	e.logger.Debug("Running %s with %d inputs", bin, len(plan.Inputs))

	cmd := exec.CommandContext(ctx, bin, plan.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.removePartial(req.OutputPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v: %s", ErrFFmpegFailed, err, tail(stderr.String()))
	}
	return nil
}

func (e *Engine) removePartial(path string) {
	if e.fs == nil {
		return
	}
	exists, err := e.fs.Exists(path)
	if err != nil || !exists {
		return
	}
	if err := e.fs.Remove(path); err != nil {
		e.logger.Warn("Failed to remove partial output %s: %v", path, err)
	}
}

// describe renders a plan for the debug sink.
func describe(p *Plan) string {
	var b strings.Builder
	b.WriteString("# inputs\n")
	for i, in := range p.Inputs {
		fmt.Fprintf(&b, "%d: %s\n", i, in)
	}
	b.WriteString("\n# filter_complex\n")
	b.WriteString(p.FilterGraph)
	b.WriteString("\n\n# args\nffmpeg")
	for _, a := range p.Args {
		if strings.ContainsAny(a, " ;'\n[") {
			a = "\"" + strings.ReplaceAll(a, "\n", " ") + "\""
		}
		b.WriteString(" " + a)
	}
	b.WriteString("\n")
	return b.String()
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return "..." + s[len(s)-maxStderr:]
	}
	return s
}

// Ensure Engine implements ports.ExportEngine
var _ ports.ExportEngine = (*Engine)(nil)
