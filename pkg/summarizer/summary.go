// Package summarizer provides summary generation for merge runs.
package summarizer

import (
	"time"

	"github.com/user/clipmerge/pkg/media"
)

// Summary contains all data collected during a merge run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input clips and audio, in timeline order
	Sources []SourceInfo

	// Combined timeline
	Composition CompositionInfo

	// Export settings and result
	Export ExportInfo

	// Library outcome
	Library LibraryInfo
}

// SourceInfo describes one loaded media file.
type SourceInfo struct {
	Role     string // "First video", "Second video" or "Audio"
	Path     string
	Duration time.Duration
	Codec    string
	Size     media.Dimension // Zero for audio
}

// CompositionInfo describes the assembled timeline.
type CompositionInfo struct {
	TotalDuration time.Duration
	SeamAt        time.Duration // Where the second clip takes over
	RenderSize    media.Dimension
	FrameRate     float64
}

// ExportInfo describes the export job.
type ExportInfo struct {
	Status           string
	OutputPath       string
	Container        string
	Preset           string
	NetworkOptimized bool
	FileSize         int64
	Elapsed          time.Duration
	Error            string
}

// LibraryInfo describes what happened after the export.
type LibraryInfo struct {
	Outcome  string
	AssetID  string
	Location string
	Error    string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource appends a loaded source. Nil sources are skipped.
func (b *Builder) WithSource(role string, src *media.Source) *Builder {
	if src == nil {
		return b
	}
	info := SourceInfo{
		Role:     role,
		Path:     src.Path,
		Duration: src.Duration,
	}
	if t, ok := src.FirstTrack(media.KindVideo); ok {
		info.Codec = t.Codec
		info.Size = t.NaturalSize()
	} else if t, ok := src.FirstTrack(media.KindAudio); ok {
		info.Codec = t.Codec
	}
	b.summary.Sources = append(b.summary.Sources, info)
	return b
}

// WithComposition sets timeline information.
func (b *Builder) WithComposition(info CompositionInfo) *Builder {
	b.summary.Composition = info
	return b
}

// WithExport sets export information.
func (b *Builder) WithExport(info ExportInfo) *Builder {
	b.summary.Export = info
	return b
}

// WithLibrary sets the library outcome.
func (b *Builder) WithLibrary(info LibraryInfo) *Builder {
	b.summary.Library = info
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
