// Package clipmerge provides a high-level API for merging two clips under one audio track.
package clipmerge

import (
	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/orchestrator"
	"github.com/user/clipmerge/pkg/ports"
)

// minTimelineWidth keeps the debug timeline legible.
const minTimelineWidth = 240

// ConfigBuilder provides a fluent interface for building orchestrator.Config.
type ConfigBuilder struct {
	config orchestrator.Config
}

// NewConfigBuilder creates a new ConfigBuilder with the default assets and
// export settings (mov, highest preset, network optimized).
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: orchestrator.DefaultConfig(),
	}
}

// Build returns the final Config, applying constraints.
// Unknown containers and presets fall back to the defaults.
func (b *ConfigBuilder) Build() orchestrator.Config {
	cfg := b.config
	defaults := orchestrator.DefaultConfig()

	if !cfg.Container.Valid() {
		cfg.Container = defaults.Container
	}
	if !cfg.Preset.Valid() {
		cfg.Preset = defaults.Preset
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = composition.DefaultFrameRate
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.TimelinePNGWidth < minTimelineWidth {
		cfg.TimelinePNGWidth = minTimelineWidth
	}

	return cfg
}

// WithClips sets the two videos. The first plays from zero, the second
// follows it and dictates the output size.
func (b *ConfigBuilder) WithClips(first, second string) *ConfigBuilder {
	b.config.FirstVideoPath = first
	b.config.SecondVideoPath = second
	return b
}

// WithAudio sets the audio file laid across both clips.
func (b *ConfigBuilder) WithAudio(path string) *ConfigBuilder {
	b.config.AudioPath = path
	return b
}

// WithOutputDir sets the directory the movie is exported to.
func (b *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	b.config.OutputDir = dir
	return b
}

// WithOutputPrefix sets the file name prefix placed before the timestamp.
func (b *ConfigBuilder) WithOutputPrefix(prefix string) *ConfigBuilder {
	b.config.OutputPrefix = prefix
	return b
}

// WithContainer sets the output container.
func (b *ConfigBuilder) WithContainer(c ports.Container) *ConfigBuilder {
	b.config.Container = c
	return b
}

// WithQualityPreset sets the encoder quality preset.
func (b *ConfigBuilder) WithQualityPreset(p ports.QualityPreset) *ConfigBuilder {
	b.config.Preset = p
	return b
}

// WithNetworkOptimized places the movie index at the front of the file.
func (b *ConfigBuilder) WithNetworkOptimized(enabled bool) *ConfigBuilder {
	b.config.NetworkOptimized = enabled
	return b
}

// WithFrameRate sets the output frame rate.
func (b *ConfigBuilder) WithFrameRate(fps float64) *ConfigBuilder {
	b.config.FrameRate = fps
	return b
}

// WithTimelinePNGWidth sets the width of the debug timeline image.
func (b *ConfigBuilder) WithTimelinePNGWidth(width int) *ConfigBuilder {
	b.config.TimelinePNGWidth = width
	return b
}
