package composition

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/media"
)

func TestLayerInstruction_OpacityAt(t *testing.T) {
	layer := NewLayerInstruction(&Track{ID: 1, Kind: media.KindVideo})
	layer.SetOpacity(0, 5*time.Second)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 1},
		{5*time.Second - time.Nanosecond, 1},
		{5 * time.Second, 0},
		{12 * time.Second, 0},
	}
	for _, tt := range tests {
		if got := layer.OpacityAt(tt.at); got != tt.want {
			t.Errorf("OpacityAt(%s): expected %v, got %v", tt.at, tt.want, got)
		}
	}
}

func TestLayerInstruction_SetOpacity_ReplacesAndSorts(t *testing.T) {
	layer := NewLayerInstruction(nil)
	layer.SetOpacity(0, 3*time.Second)
	layer.SetOpacity(1, time.Second)
	layer.SetOpacity(0.5, 3*time.Second)
	layer.SetOpacity(2, 4*time.Second)

	if len(layer.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(layer.Steps))
	}
	if layer.Steps[0].At != time.Second || layer.Steps[1].Opacity != 0.5 {
		t.Errorf("unexpected steps %+v", layer.Steps)
	}
	if layer.Steps[2].Opacity != 1 {
		t.Errorf("opacity should be clamped to 1, got %v", layer.Steps[2].Opacity)
	}
}

func TestLayerInstruction_Intervals(t *testing.T) {
	layer := NewLayerInstruction(nil)
	layer.SetOpacity(0, 5*time.Second)

	got := layer.Intervals(media.NewTimeRange(0, 12*time.Second))
	want := []OpacityInterval{
		{Range: media.NewTimeRange(0, 5*time.Second), Opacity: 1},
		{Range: media.NewTimeRange(5*time.Second, 7*time.Second), Opacity: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	constant := NewLayerInstruction(nil).Intervals(media.NewTimeRange(0, time.Second))
	if len(constant) != 1 || constant[0].Opacity != 1 {
		t.Errorf("unexpected constant intervals %+v", constant)
	}
}

func TestInstruction_Validate(t *testing.T) {
	src := &media.Source{Path: "a.mp4", Duration: 2 * time.Second, Tracks: []media.Track{{ID: 1, Kind: media.KindVideo}}}
	st, _ := src.FirstTrack(media.KindVideo)

	c := New()
	track := c.AddTrack(media.KindVideo)
	if err := track.InsertTimeRange(media.NewTimeRange(0, 2*time.Second), src, st, 0); err != nil {
		t.Fatal(err)
	}

	ok := Instruction{TimeRange: media.NewTimeRange(0, 2*time.Second), Layers: []*LayerInstruction{NewLayerInstruction(track)}}
	if err := ok.Validate(c); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	short := Instruction{TimeRange: media.NewTimeRange(0, time.Second), Layers: ok.Layers}
	if err := short.Validate(c); !errors.Is(err, ErrInconsistentInstruction) {
		t.Errorf("expected range mismatch error, got %v", err)
	}

	foreign := Instruction{TimeRange: ok.TimeRange, Layers: []*LayerInstruction{NewLayerInstruction(&Track{ID: 9, Kind: media.KindVideo})}}
	if err := foreign.Validate(c); !errors.Is(err, ErrInconsistentInstruction) {
		t.Errorf("expected foreign track error, got %v", err)
	}

	none := Instruction{TimeRange: ok.TimeRange}
	if err := none.Validate(c); !errors.Is(err, ErrInconsistentInstruction) {
		t.Errorf("expected no layers error, got %v", err)
	}
}

func TestLayerInstruction_MarshalJSON(t *testing.T) {
	layer := NewLayerInstruction(&Track{ID: 2, Kind: media.KindVideo})
	layer.SetOpacity(0, time.Second)

	data, err := json.Marshal(layer)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"track_id":2`) {
		t.Errorf("expected track_id in %s", data)
	}
}

func TestRenderConfig_FrameDuration(t *testing.T) {
	rc := RenderConfig{FrameRate: 25}
	if got := rc.FrameDuration(); got != 40*time.Millisecond {
		t.Errorf("expected 40ms, got %s", got)
	}
	if got := (RenderConfig{}).FrameDuration(); got != time.Second/30 {
		t.Errorf("expected default 30fps frame duration, got %s", got)
	}
}
