package clipmerge

import (
	"context"
	"fmt"

	"github.com/user/clipmerge/pkg/adapters/authorizer"
	"github.com/user/clipmerge/pkg/adapters/dirlibrary"
	"github.com/user/clipmerge/pkg/adapters/ffmpegexport"
	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/adapters/filesink"
	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/adapters/nullsink"
	"github.com/user/clipmerge/pkg/adapters/osfilesystem"
	"github.com/user/clipmerge/pkg/adapters/smartprober"
	"github.com/user/clipmerge/pkg/adapters/timelineviz"
	"github.com/user/clipmerge/pkg/orchestrator"
	"github.com/user/clipmerge/pkg/ports"
	"github.com/user/clipmerge/pkg/stages/complete"
	"github.com/user/clipmerge/pkg/stages/export"
	"github.com/user/clipmerge/pkg/stages/instruction"
	"github.com/user/clipmerge/pkg/stages/load"
	"github.com/user/clipmerge/pkg/stages/timeline"
)

// DefaultLibraryDir is used when no library is configured.
const DefaultLibraryDir = "./library"

// Options wires the adapters of a Merger. Zero values select the defaults.
type Options struct {
	FFmpegPath  string // Discovered when empty
	FFprobePath string // Looked up next to ffmpeg when empty

	// DebugDir enables debug output when set.
	DebugDir string

	Library    ports.Library    // Default: directory library at DefaultLibraryDir
	Authorizer ports.Authorizer // Default: terminal prompt
	FileSystem ports.FileSystem // Default: os file system
	Logger     ports.Logger     // Default: no-op
}

// Merger runs the merge pipeline with real adapters.
type Merger struct {
	orch *orchestrator.Orchestrator
}

// New wires a Merger. It fails when ffmpeg cannot be found.
func New(opts Options) (*Merger, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	fs := opts.FileSystem
	if fs == nil {
		fs = osfilesystem.New()
	}

	fftools.SetFFmpegPath(opts.FFmpegPath)
	ffmpegPath, err := fftools.FindFFmpeg()
	if err != nil {
		return nil, err
	}

	var sink ports.DebugSink = nullsink.New()
	if opts.DebugDir != "" {
		if err := fs.MkdirAll(opts.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(opts.DebugDir, fs)
	}

	library := opts.Library
	if library == nil {
		library = dirlibrary.New(DefaultLibraryDir, fs)
	}
	auth := opts.Authorizer
	if auth == nil {
		auth = authorizer.NewPrompt()
	}

	prober := smartprober.New(smartprober.Options{FFprobePath: opts.FFprobePath}, log)
	engine := ffmpegexport.New(ffmpegPath, fs, sink, log)

	orch := orchestrator.New(
		load.NewStage(prober),
		timeline.NewStage(),
		instruction.NewStage(),
		export.NewStage(export.NewExporter(engine, fs, log)),
		complete.NewStage(complete.NewHandler(library, log)),
		auth,
		timelineviz.New(),
		sink,
		log,
	)

	return &Merger{orch: orch}, nil
}

// Merge loads, assembles, exports and saves one movie.
func (m *Merger) Merge(ctx context.Context, cfg orchestrator.Config) (orchestrator.RunResult, error) {
	return m.orch.Run(ctx, cfg)
}
