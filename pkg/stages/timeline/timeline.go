// Package timeline assembles the two clips and the audio into a composition.
package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/pipeline"
)

// Build places the first clip at zero, the second clip exactly where the
// first ends, and the audio under both. Each insertion copies the first track
// of the required kind. The audio must cover the combined duration; it is
// never padded.
func Build(first, second, audio *media.Source) (pipeline.TimelineResult, error) {
	if first == nil || second == nil || audio == nil {
		return pipeline.TimelineResult{}, pipeline.NewStageError(pipeline.ErrTrackInsertion, "build timeline", errors.New("missing source"))
	}

	durA := first.Duration
	durB := second.Duration

	comp := composition.New()
	result := pipeline.TimelineResult{
		Composition:    comp,
		FirstDuration:  durA,
		SecondDuration: durB,
	}

	inserts := []struct {
		op    string
		kind  media.Kind
		src   *media.Source
		rng   media.TimeRange
		at    time.Duration
		track **composition.Track
	}{
		{"insert first video", media.KindVideo, first, media.NewTimeRange(0, durA), 0, &result.FirstTrack},
		{"insert second video", media.KindVideo, second, media.NewTimeRange(0, durB), durA, &result.SecondTrack},
		{"insert audio", media.KindAudio, audio, media.NewTimeRange(0, durA+durB), 0, &result.AudioTrack},
	}

	for _, ins := range inserts {
		track := comp.AddTrack(ins.kind)
		sourceTrack, _ := ins.src.FirstTrack(ins.kind)
		if err := track.InsertTimeRange(ins.rng, ins.src, sourceTrack, ins.at); err != nil {
			return pipeline.TimelineResult{}, pipeline.NewStageError(pipeline.ErrTrackInsertion, ins.op, err)
		}
		*ins.track = track
	}

	return result, nil
}

// Stage wraps Build as a pipeline stage.
type Stage struct{}

// NewStage creates a new timeline stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute builds the composition.
func (s *Stage) Execute(ctx context.Context, input pipeline.TimelineInput) (pipeline.TimelineResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.TimelineResult{}, err
	}
	return Build(input.FirstVideo, input.SecondVideo, input.Audio)
}
