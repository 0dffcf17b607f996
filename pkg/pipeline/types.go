package pipeline

import (
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

// =============================================================================
// Load Stage Types
// =============================================================================

// LoadInput names the three media files of a run.
type LoadInput struct {
	FirstVideoPath  string
	SecondVideoPath string
	AudioPath       string
}

// LoadResult contains the loaded sources.
type LoadResult struct {
	FirstVideo  *media.Source
	SecondVideo *media.Source
	Audio       *media.Source
}

// =============================================================================
// Timeline Stage Types
// =============================================================================

// TimelineInput contains the sources to assemble.
type TimelineInput struct {
	FirstVideo  *media.Source
	SecondVideo *media.Source
	Audio       *media.Source
}

// TimelineResult contains the assembled composition and its tracks.
type TimelineResult struct {
	Composition *composition.Composition
	FirstTrack  *composition.Track
	SecondTrack *composition.Track
	AudioTrack  *composition.Track

	FirstDuration  time.Duration
	SecondDuration time.Duration
}

// TotalDuration returns the combined duration of both clips.
func (r TimelineResult) TotalDuration() time.Duration {
	return r.FirstDuration + r.SecondDuration
}

// =============================================================================
// Instruction Stage Types
// =============================================================================

// InstructionInput contains parameters for building the render instruction.
type InstructionInput struct {
	Timeline    TimelineResult
	SecondVideo *media.Source // Dictates the render size
	FrameRate   float64       // Output frame rate (default: 30)
}

// InstructionResult contains the render instruction and config.
type InstructionResult struct {
	Instruction  composition.Instruction
	RenderConfig composition.RenderConfig
}

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportInput contains parameters for the export job.
type ExportInput struct {
	Composition      *composition.Composition
	Instruction      composition.Instruction
	RenderConfig     composition.RenderConfig
	OutputPath       string
	Container        ports.Container
	Preset           ports.QualityPreset
	NetworkOptimized bool
}

// ExportStatus is the lifecycle state of an export job.
type ExportStatus string

const (
	ExportIdle      ExportStatus = "idle"
	ExportRunning   ExportStatus = "exporting"
	ExportSucceeded ExportStatus = "succeeded"
	ExportFailed    ExportStatus = "failed"
	ExportCancelled ExportStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s ExportStatus) IsTerminal() bool {
	return s == ExportSucceeded || s == ExportFailed || s == ExportCancelled
}

// ExportResult is the terminal outcome of an export job.
type ExportResult struct {
	Status     ExportStatus
	OutputPath string // Set only when Status is ExportSucceeded
	Err        error  // Set when Status is ExportFailed or ExportCancelled
	Elapsed    time.Duration
	FileSize   int64
}

// =============================================================================
// Completion Stage Types
// =============================================================================

// CompletionInput contains the export result and the library grant.
type CompletionInput struct {
	Export ExportResult
	Grant  ports.Grant
}

// Outcome describes what happened after the export finished.
type Outcome string

const (
	// OutcomeSkipped means the export did not succeed and nothing was saved.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNotAuthorized means library access was denied.
	OutcomeNotAuthorized Outcome = "not_authorized"
	// OutcomeSaved means the output was saved as a new library asset.
	OutcomeSaved Outcome = "saved"
	// OutcomePersistenceFailed means the library rejected the asset.
	OutcomePersistenceFailed Outcome = "persistence_failed"
)

// CompletionResult is reported to the presentation layer.
type CompletionResult struct {
	Outcome Outcome
	Asset   *ports.Asset
	Err     error
}

// Success reports whether a library asset was created.
func (r CompletionResult) Success() bool {
	return r.Outcome == OutcomeSaved && r.Err == nil
}
