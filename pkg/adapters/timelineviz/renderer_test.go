package timelineviz

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
)

func mergeTimeline(t *testing.T) (*composition.Composition, composition.Instruction) {
	t.Helper()

	a := &media.Source{Path: "assets/video2.mp4", Duration: 5 * time.Second, Tracks: []media.Track{{ID: 1, Kind: media.KindVideo}}}
	b := &media.Source{Path: "assets/video1.mp4", Duration: 7 * time.Second, Tracks: []media.Track{{ID: 1, Kind: media.KindVideo}}}
	audio := &media.Source{Path: "assets/audio.mp3", Duration: 12 * time.Second, Tracks: []media.Track{{ID: 1, Kind: media.KindAudio}}}

	c := composition.New()
	ta := c.AddTrack(media.KindVideo)
	tb := c.AddTrack(media.KindVideo)
	tAudio := c.AddTrack(media.KindAudio)
	for _, ins := range []struct {
		track *composition.Track
		src   *media.Source
		at    time.Duration
	}{{ta, a, 0}, {tb, b, 5 * time.Second}, {tAudio, audio, 0}} {
		if err := ins.track.InsertTimeRange(media.NewTimeRange(0, ins.src.Duration), ins.src, &ins.src.Tracks[0], ins.at); err != nil {
			t.Fatal(err)
		}
	}

	layerA := composition.NewLayerInstruction(ta)
	layerA.SetOpacity(0, 5*time.Second)
	in := composition.Instruction{
		TimeRange: c.TimeRange(),
		Layers:    []*composition.LayerInstruction{layerA, composition.NewLayerInstruction(tb)},
	}
	return c, in
}

func TestRenderer_RenderPNG(t *testing.T) {
	c, in := mergeTimeline(t)

	data, err := New().RenderPNG(c, in, DefaultWidth)
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	bounds := img.Bounds()
	wantHeight := rulerHeight + 3*(rowHeight+rowGap) + marginBottom
	if bounds.Dx() != DefaultWidth || bounds.Dy() != wantHeight {
		t.Errorf("expected %dx%d, got %dx%d", DefaultWidth, wantHeight, bounds.Dx(), bounds.Dy())
	}

	// Inside the second clip's row, away from labels, ticks and seams.
	scale := float64(DefaultWidth-marginLeft-marginRight) / float64(12*time.Second)
	px := int(marginLeft + float64(9500*time.Millisecond)*scale)
	py := rulerHeight + (rowHeight + rowGap) + rowHeight - 4
	r, g, b, _ := img.At(px, py).RGBA()
	if uint8(r>>8) != colorVideo.R || uint8(g>>8) != colorVideo.G || uint8(b>>8) != colorVideo.B {
		t.Errorf("expected video color at (%d,%d), got %d,%d,%d", px, py, r>>8, g>>8, b>>8)
	}
}

func TestRenderer_RenderPNG_Empty(t *testing.T) {
	if _, err := New().RenderPNG(composition.New(), composition.Instruction{}, DefaultWidth); err == nil {
		t.Error("expected error for empty composition")
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		total time.Duration
		want  time.Duration
	}{
		{time.Second, 100 * time.Millisecond},
		{12 * time.Second, time.Second},
		{13 * time.Second, 2 * time.Second},
		{time.Minute, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := tickStep(tt.total); got != tt.want {
			t.Errorf("tickStep(%s): expected %s, got %s", tt.total, tt.want, got)
		}
	}
}
