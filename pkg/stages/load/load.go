// Package load implements the asset loading stage.
package load

import (
	"context"
	"errors"

	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
)

// Stage resolves the three media files of a run.
type Stage struct {
	prober ports.MediaProber
}

// NewStage creates a new load stage.
func NewStage(prober ports.MediaProber) *Stage {
	return &Stage{
		prober: prober,
	}
}

// Execute probes the first video, the second video and the audio, in that order.
// The first failure aborts the stage.
func (s *Stage) Execute(ctx context.Context, input pipeline.LoadInput) (pipeline.LoadResult, error) {
	result := pipeline.LoadResult{}

	steps := []struct {
		op   string
		path string
		dst  **media.Source
	}{
		{"load first video", input.FirstVideoPath, &result.FirstVideo},
		{"load second video", input.SecondVideoPath, &result.SecondVideo},
		{"load audio", input.AudioPath, &result.Audio},
	}

	for _, step := range steps {
		if step.path == "" {
			return pipeline.LoadResult{}, pipeline.NewStageError(pipeline.ErrSourceLoad, step.op, errors.New("no path configured"))
		}
		src, err := s.prober.Probe(ctx, step.path)
		if err != nil {
			return pipeline.LoadResult{}, pipeline.NewStageError(pipeline.ErrSourceLoad, step.op, err)
		}
		*step.dst = src
	}

	return result, nil
}
