// Package instruction describes how the composition's video layers are drawn.
package instruction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/pipeline"
)

// ErrNoRenderSize is returned when the second clip has no usable video track.
var ErrNoRenderSize = errors.New("instruction: second video has no natural size")

// Build returns one instruction over [0, durationA+durationB) with layers
// ordered {first, second}. The first layer is opaque before durationA and
// transparent from durationA on; the second layer is always opaque.
func Build(first, second *composition.Track, durationA, durationB time.Duration) composition.Instruction {
	layerA := composition.NewLayerInstruction(first)
	layerA.SetOpacity(0, durationA)

	layerB := composition.NewLayerInstruction(second)

	return composition.Instruction{
		TimeRange: media.NewTimeRange(0, durationA+durationB),
		Layers:    []*composition.LayerInstruction{layerA, layerB},
	}
}

// ResolveRenderConfig sizes the output after the second clip's first video
// track, whatever the first clip's size. fps <= 0 selects the default rate.
func ResolveRenderConfig(second *media.Source, fps float64) (composition.RenderConfig, error) {
	if fps <= 0 {
		fps = composition.DefaultFrameRate
	}
	if second == nil {
		return composition.RenderConfig{}, ErrNoRenderSize
	}
	track, ok := second.FirstTrack(media.KindVideo)
	if !ok {
		return composition.RenderConfig{}, fmt.Errorf("%w: %s has no video track", ErrNoRenderSize, second.Path)
	}
	size := track.NaturalSize()
	if size.IsZero() {
		return composition.RenderConfig{}, fmt.Errorf("%w: %s reports %s", ErrNoRenderSize, second.Path, size)
	}
	return composition.RenderConfig{FrameRate: fps, RenderSize: size}, nil
}

// Stage builds the instruction and render config.
type Stage struct{}

// NewStage creates a new instruction stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute builds and validates the render instruction.
func (s *Stage) Execute(ctx context.Context, input pipeline.InstructionInput) (pipeline.InstructionResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.InstructionResult{}, err
	}

	tl := input.Timeline
	in := Build(tl.FirstTrack, tl.SecondTrack, tl.FirstDuration, tl.SecondDuration)
	if err := in.Validate(tl.Composition); err != nil {
		return pipeline.InstructionResult{}, pipeline.NewStageError(pipeline.ErrExport, "build render instruction", err)
	}

	rc, err := ResolveRenderConfig(input.SecondVideo, input.FrameRate)
	if err != nil {
		return pipeline.InstructionResult{}, pipeline.NewStageError(pipeline.ErrExport, "resolve render config", err)
	}

	return pipeline.InstructionResult{Instruction: in, RenderConfig: rc}, nil
}
