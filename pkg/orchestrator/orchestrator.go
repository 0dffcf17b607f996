// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
)

// OutputTimeLayout formats the timestamp in output file names,
// e.g. "March 4, 2025 at 09.41.07".
const OutputTimeLayout = "January 2, 2006 at 15.04.05"

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	FirstVideoPath  string
	SecondVideoPath string
	AudioPath       string

	// Output
	OutputDir        string
	OutputPrefix     string
	Container        ports.Container
	Preset           ports.QualityPreset
	NetworkOptimized bool
	FrameRate        float64

	// Debug
	TimelinePNGWidth int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FirstVideoPath:  "assets/video2.mp4",
		SecondVideoPath: "assets/video1.mp4",
		AudioPath:       "assets/audio.mp3",

		OutputDir:        ".",
		OutputPrefix:     "mergeVideo-",
		Container:        ports.ContainerMOV,
		Preset:           ports.PresetHighest,
		NetworkOptimized: true,
		FrameRate:        composition.DefaultFrameRate,

		TimelinePNGWidth: 960,
	}
}

// OutputFileName returns the export file name for a run started at t.
func OutputFileName(prefix string, t time.Time, container ports.Container) string {
	return prefix + t.Format(OutputTimeLayout) + container.Extension()
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	loadStage        pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult]
	timelineStage    pipeline.Stage[pipeline.TimelineInput, pipeline.TimelineResult]
	instructionStage pipeline.Stage[pipeline.InstructionInput, pipeline.InstructionResult]
	exportStage      pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	completeStage    pipeline.Stage[pipeline.CompletionInput, pipeline.CompletionResult]
	authorizer       ports.Authorizer
	visualizer       ports.TimelineVisualizer
	sink             ports.DebugSink
	logger           ports.Logger
	now              func() time.Time
}

// New creates a new Orchestrator.
func New(
	loadStage pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult],
	timelineStage pipeline.Stage[pipeline.TimelineInput, pipeline.TimelineResult],
	instructionStage pipeline.Stage[pipeline.InstructionInput, pipeline.InstructionResult],
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	completeStage pipeline.Stage[pipeline.CompletionInput, pipeline.CompletionResult],
	authorizer ports.Authorizer,
	visualizer ports.TimelineVisualizer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		loadStage:        loadStage,
		timelineStage:    timelineStage,
		instructionStage: instructionStage,
		exportStage:      exportStage,
		completeStage:    completeStage,
		authorizer:       authorizer,
		visualizer:       visualizer,
		sink:             sink,
		logger:           logger,
		now:              time.Now,
	}
}

// SetClock replaces the clock used to name output files.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Run executes the complete pipeline.
// The returned RunResult is filled as far as the run got, also on error.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting pipeline")
	result := RunResult{}

	// 1. Load assets
	o.logger.Info("Loading assets")
	loaded, err := o.loadStage.Execute(ctx, pipeline.LoadInput{
		FirstVideoPath:  config.FirstVideoPath,
		SecondVideoPath: config.SecondVideoPath,
		AudioPath:       config.AudioPath,
	})
	if err != nil {
		o.logger.Error("Failed to load assets: %v", err)
		return result, fmt.Errorf("load stage: %w", err)
	}
	result.FirstVideo = loaded.FirstVideo
	result.SecondVideo = loaded.SecondVideo
	result.Audio = loaded.Audio
	o.logger.Info("Loaded %s (%s), %s (%s) and %s (%s)",
		loaded.FirstVideo.Path, loaded.FirstVideo.Duration,
		loaded.SecondVideo.Path, loaded.SecondVideo.Duration,
		loaded.Audio.Path, loaded.Audio.Duration)

	o.saveJSON("sources", o.sink.SaveSourcesJSON, loaded)

	// 2. Build timeline
	o.logger.Info("Building timeline")
	tl, err := o.timelineStage.Execute(ctx, pipeline.TimelineInput{
		FirstVideo:  loaded.FirstVideo,
		SecondVideo: loaded.SecondVideo,
		Audio:       loaded.Audio,
	})
	if err != nil {
		o.logger.Error("Failed to build timeline: %v", err)
		return result, fmt.Errorf("timeline stage: %w", err)
	}
	result.TotalDuration = tl.TotalDuration()
	o.logger.Info("Timeline built: %s + %s = %s", tl.FirstDuration, tl.SecondDuration, tl.TotalDuration())

	o.saveJSON("timeline", o.sink.SaveTimelineJSON, tl.Composition)

	// 3. Describe the render instruction
	instr, err := o.instructionStage.Execute(ctx, pipeline.InstructionInput{
		Timeline:    tl,
		SecondVideo: loaded.SecondVideo,
		FrameRate:   config.FrameRate,
	})
	if err != nil {
		o.logger.Error("Failed to build render instruction: %v", err)
		return result, fmt.Errorf("instruction stage: %w", err)
	}
	result.RenderSize = instr.RenderConfig.RenderSize
	result.FrameRate = instr.RenderConfig.FrameRate
	o.logger.Info("Render size %s at %.2f fps", instr.RenderConfig.RenderSize, instr.RenderConfig.FrameRate)

	o.saveJSON("instruction", o.sink.SaveInstructionJSON, instr)
	o.saveTimelinePNG(tl.Composition, instr.Instruction, config.TimelinePNGWidth)

	// 4. Export
	outputPath := filepath.Join(config.OutputDir, OutputFileName(config.OutputPrefix, o.now(), config.Container))
	o.logger.Info("Exporting to %s (%s preset)", outputPath, config.Preset)
	exported, err := o.exportStage.Execute(ctx, pipeline.ExportInput{
		Composition:      tl.Composition,
		Instruction:      instr.Instruction,
		RenderConfig:     instr.RenderConfig,
		OutputPath:       outputPath,
		Container:        config.Container,
		Preset:           config.Preset,
		NetworkOptimized: config.NetworkOptimized,
	})
	if err != nil {
		o.logger.Error("Failed to start export: %v", err)
		return result, fmt.Errorf("export stage: %w", err)
	}
	result.Export = exported

	// 5. Completion
	grant := ports.Grant{}
	if exported.Status == pipeline.ExportSucceeded {
		o.logger.Info("Output saved to %s", exported.OutputPath)
		grant, err = o.authorizer.Authorize(ctx)
		if err != nil {
			o.logger.Warn("Library authorization failed: %v", err)
			grant = ports.NewGrant(ports.AuthorizationDenied, o.now())
		}
	}

	completion, err := o.completeStage.Execute(ctx, pipeline.CompletionInput{Export: exported, Grant: grant})
	if err != nil {
		return result, fmt.Errorf("complete stage: %w", err)
	}
	result.Completion = completion

	switch completion.Outcome {
	case pipeline.OutcomeSkipped:
		o.logger.Error("Export %s: %v", exported.Status, exported.Err)
		return result, fmt.Errorf("export stage: %w", exported.Err)
	case pipeline.OutcomePersistenceFailed:
		return result, fmt.Errorf("complete stage: %w", completion.Err)
	}

	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

func (o *Orchestrator) saveJSON(name string, save func([]byte) error, v interface{}) {
	if !o.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err == nil {
		err = save(data)
	}
	if err != nil {
		o.logger.Warn("Failed to save %s debug output: %v", name, err)
	}
}

func (o *Orchestrator) saveTimelinePNG(c *composition.Composition, in composition.Instruction, width int) {
	if !o.sink.Enabled() || o.visualizer == nil {
		return
	}
	data, err := o.visualizer.RenderPNG(c, in, width)
	if err == nil {
		err = o.sink.SaveTimelinePNG(data)
	}
	if err != nil {
		o.logger.Warn("Failed to save timeline debug output: %v", err)
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Sources
	FirstVideo  *media.Source
	SecondVideo *media.Source
	Audio       *media.Source

	// Composition
	TotalDuration time.Duration
	RenderSize    media.Dimension
	FrameRate     float64

	// Export and library
	Export     pipeline.ExportResult
	Completion pipeline.CompletionResult
}

// Saved reports whether the output was stored in the library.
func (r RunResult) Saved() bool {
	return r.Completion.Success()
}
