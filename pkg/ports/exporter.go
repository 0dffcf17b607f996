package ports

import (
	"context"

	"github.com/user/clipmerge/pkg/composition"
)

// Container is the output file format.
type Container string

const (
	ContainerMOV Container = "mov"
	ContainerMP4 Container = "mp4"
)

// Extension returns the file extension including the dot.
func (c Container) Extension() string {
	if c == ContainerMP4 {
		return ".mp4"
	}
	return ".mov"
}

// Valid reports whether the container is supported.
func (c Container) Valid() bool {
	return c == ContainerMOV || c == ContainerMP4
}

// QualityPreset names an encoder quality level.
type QualityPreset string

const (
	PresetHighest QualityPreset = "highest"
	PresetHigh    QualityPreset = "high"
	PresetMedium  QualityPreset = "medium"
	PresetLow     QualityPreset = "low"
)

// Valid reports whether the preset is known.
func (p QualityPreset) Valid() bool {
	switch p {
	case PresetHighest, PresetHigh, PresetMedium, PresetLow:
		return true
	}
	return false
}

// ExportRequest is everything an engine needs to render one output file.
type ExportRequest struct {
	Composition      *composition.Composition
	Instruction      composition.Instruction
	RenderConfig     composition.RenderConfig
	OutputPath       string
	Container        Container
	Preset           QualityPreset
	NetworkOptimized bool // Place the index at the front of the file
}

// ExportEngine renders and encodes a composition.
type ExportEngine interface {
	// Export blocks until the output file is complete or ctx is done.
	// Implementations must not leave a partial file behind on error.
	Export(ctx context.Context, req ExportRequest) error
}
