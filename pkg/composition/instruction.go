package composition

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/user/clipmerge/pkg/media"
)

// DefaultFrameRate is the output frame rate used when none is configured.
const DefaultFrameRate = 30.0

// OpacityStep sets a layer's opacity from At onwards.
type OpacityStep struct {
	At      time.Duration `json:"at"`
	Opacity float64       `json:"opacity"`
}

// LayerInstruction describes how one composition track is drawn.
type LayerInstruction struct {
	Track *Track        `json:"-"`
	Steps []OpacityStep `json:"steps,omitempty"`
}

// NewLayerInstruction creates a fully opaque layer for the track.
func NewLayerInstruction(track *Track) *LayerInstruction {
	return &LayerInstruction{Track: track}
}

// SetOpacity changes the opacity at time at. The value holds until the next step.
func (l *LayerInstruction) SetOpacity(opacity float64, at time.Duration) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	for i := range l.Steps {
		if l.Steps[i].At == at {
			l.Steps[i].Opacity = opacity
			return
		}
	}
	l.Steps = append(l.Steps, OpacityStep{At: at, Opacity: opacity})
	sort.Slice(l.Steps, func(i, j int) bool { return l.Steps[i].At < l.Steps[j].At })
}

// OpacityAt returns the opacity in effect at t. Layers start fully opaque.
func (l *LayerInstruction) OpacityAt(t time.Duration) float64 {
	opacity := 1.0
	for _, s := range l.Steps {
		if s.At > t {
			break
		}
		opacity = s.Opacity
	}
	return opacity
}

// Intervals splits r into contiguous spans of constant opacity.
func (l *LayerInstruction) Intervals(r media.TimeRange) []OpacityInterval {
	var out []OpacityInterval
	start := r.Start
	current := l.OpacityAt(start)
	for _, s := range l.Steps {
		if s.At <= start || s.At >= r.End() {
			continue
		}
		if s.Opacity == current {
			continue
		}
		out = append(out, OpacityInterval{Range: media.NewTimeRange(start, s.At-start), Opacity: current})
		start = s.At
		current = s.Opacity
	}
	if start < r.End() {
		out = append(out, OpacityInterval{Range: media.NewTimeRange(start, r.End()-start), Opacity: current})
	}
	return out
}

// MarshalJSON writes the layer with its track ID in place of the track pointer.
func (l *LayerInstruction) MarshalJSON() ([]byte, error) {
	trackID := 0
	if l.Track != nil {
		trackID = l.Track.ID
	}
	return json.Marshal(struct {
		TrackID int           `json:"track_id"`
		Steps   []OpacityStep `json:"steps,omitempty"`
	}{trackID, l.Steps})
}

// OpacityInterval is a span with one opacity value.
type OpacityInterval struct {
	Range   media.TimeRange
	Opacity float64
}

// Instruction describes how video layers are composited over a time range.
// Earlier layers draw on top of later ones.
type Instruction struct {
	TimeRange media.TimeRange     `json:"time_range"`
	Layers    []*LayerInstruction `json:"layers"`
}

// Validate checks that the instruction covers exactly the composition's range
// and only references the composition's video tracks.
func (in Instruction) Validate(c *Composition) error {
	if c == nil {
		return fmt.Errorf("%w: no composition", ErrInconsistentInstruction)
	}
	if !in.TimeRange.Equal(c.TimeRange()) {
		return fmt.Errorf("%w: instruction range %s, composition range %s",
			ErrInconsistentInstruction, in.TimeRange, c.TimeRange())
	}
	if len(in.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInconsistentInstruction)
	}
	for i, layer := range in.Layers {
		if layer == nil || layer.Track == nil {
			return fmt.Errorf("%w: layer %d has no track", ErrInconsistentInstruction, i)
		}
		if !c.HasTrack(layer.Track) {
			return fmt.Errorf("%w: layer %d references track %d outside the composition",
				ErrInconsistentInstruction, i, layer.Track.ID)
		}
		if layer.Track.Kind != media.KindVideo {
			return fmt.Errorf("%w: layer %d references a %s track", ErrInconsistentInstruction, i, layer.Track.Kind)
		}
	}
	return nil
}

// RenderConfig holds output frame rate and canvas size.
type RenderConfig struct {
	FrameRate  float64         `json:"frame_rate"`
	RenderSize media.Dimension `json:"render_size"`
}

// FrameDuration returns the duration of one output frame.
func (rc RenderConfig) FrameDuration() time.Duration {
	fps := rc.FrameRate
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return time.Duration(float64(time.Second) / fps)
}
