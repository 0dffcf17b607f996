package ffmpegexport

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

func source(path string, d time.Duration, kind media.Kind, w, h int) *media.Source {
	return &media.Source{
		Path:     path,
		Duration: d,
		Tracks:   []media.Track{{ID: 1, Kind: kind, Duration: d, Width: w, Height: h}},
	}
}

// mergeRequest builds the two-clip request: A [0,5), B [5,12), audio [0,12).
func mergeRequest(t *testing.T) ports.ExportRequest {
	t.Helper()

	a := source("a.mp4", 5*time.Second, media.KindVideo, 1280, 720)
	b := source("b.mp4", 7*time.Second, media.KindVideo, 1920, 1080)
	audio := source("audio.mp3", 12*time.Second, media.KindAudio, 0, 0)

	c := composition.New()
	ta := c.AddTrack(media.KindVideo)
	tb := c.AddTrack(media.KindVideo)
	tAudio := c.AddTrack(media.KindAudio)

	insert := func(track *composition.Track, src *media.Source, kind media.Kind, at time.Duration) {
		st, _ := src.FirstTrack(kind)
		if err := track.InsertTimeRange(media.NewTimeRange(0, src.Duration), src, st, at); err != nil {
			t.Fatal(err)
		}
	}
	insert(ta, a, media.KindVideo, 0)
	insert(tb, b, media.KindVideo, 5*time.Second)
	insert(tAudio, audio, media.KindAudio, 0)

	layerA := composition.NewLayerInstruction(ta)
	layerA.SetOpacity(0, 5*time.Second)

	return ports.ExportRequest{
		Composition: c,
		Instruction: composition.Instruction{
			TimeRange: c.TimeRange(),
			Layers:    []*composition.LayerInstruction{layerA, composition.NewLayerInstruction(tb)},
		},
		RenderConfig: composition.RenderConfig{
			FrameRate:  30,
			RenderSize: media.Dimension{Width: 1920, Height: 1080},
		},
		OutputPath:       "out/mergeVideo.mov",
		Container:        ports.ContainerMOV,
		Preset:           ports.PresetHighest,
		NetworkOptimized: true,
	}
}

func TestBuildPlan_Merge(t *testing.T) {
	plan, err := BuildPlan(mergeRequest(t))
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}

	wantInputs := []string{"a.mp4", "b.mp4", "audio.mp3"}
	if strings.Join(plan.Inputs, ",") != strings.Join(wantInputs, ",") {
		t.Errorf("expected inputs %v, got %v", wantInputs, plan.Inputs)
	}

	graph := plan.FilterGraph
	for _, want := range []string{
		"color=c=black:s=1920x1080:r=30:d=12[base]",
		"[1:v:0]trim=start=0:end=7,setpts=PTS-STARTPTS+5/TB",
		"[base][v0]overlay=eof_action=pass:enable='gte(t,5)*lt(t,12)'[o0]",
		"[0:v:0]trim=start=0:end=5,setpts=PTS-STARTPTS+0/TB",
		"[o0][v1]overlay=eof_action=pass:enable='gte(t,0)*lt(t,5)'[o1]",
		"[o1]format=yuv420p[vout]",
		"[2:a:0]atrim=start=0:end=12,asetpts=PTS-STARTPTS,adelay=0:all=1[a0]",
		"[a0]anull[aout]",
	} {
		if !strings.Contains(graph, want) {
			t.Errorf("filter graph missing %q\n%s", want, graph)
		}
	}

	// B is drawn first so that A ends up on top.
	if strings.Index(graph, "[1:v:0]") > strings.Index(graph, "[0:v:0]") {
		t.Error("expected bottom layer to be composited first")
	}
}

func TestBuildPlan_Args(t *testing.T) {
	plan, err := BuildPlan(mergeRequest(t))
	if err != nil {
		t.Fatal(err)
	}
	args := strings.Join(plan.Args, " ")

	for _, want := range []string{
		"-n ",
		"-i a.mp4 -i b.mp4 -i audio.mp3",
		"-map [vout] -map [aout]",
		"-preset slow -crf 18",
		"-t 12 -f mov -movflags +faststart out/mergeVideo.mov",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
	if plan.Args[len(plan.Args)-1] != "out/mergeVideo.mov" {
		t.Errorf("output path must be last, got %q", plan.Args[len(plan.Args)-1])
	}
}

func TestBuildPlan_Presets(t *testing.T) {
	tests := []struct {
		preset ports.QualityPreset
		want   string
	}{
		{ports.PresetHighest, "-preset slow -crf 18"},
		{ports.PresetHigh, "-preset medium -crf 20"},
		{ports.PresetMedium, "-preset medium -crf 23"},
		{ports.PresetLow, "-preset veryfast -crf 28"},
	}
	for _, tt := range tests {
		req := mergeRequest(t)
		req.Preset = tt.preset
		req.NetworkOptimized = false
		req.Container = ports.ContainerMP4

		plan, err := BuildPlan(req)
		if err != nil {
			t.Fatalf("%s: %v", tt.preset, err)
		}
		args := strings.Join(plan.Args, " ")
		if !strings.Contains(args, tt.want) {
			t.Errorf("%s: expected %q in %s", tt.preset, tt.want, args)
		}
		if strings.Contains(args, "faststart") {
			t.Errorf("%s: faststart must follow NetworkOptimized", tt.preset)
		}
		if !strings.Contains(args, "-f mp4") {
			t.Errorf("%s: expected mp4 container", tt.preset)
		}
	}
}

func TestBuildPlan_NoAudio(t *testing.T) {
	req := mergeRequest(t)
	for _, track := range req.Composition.TracksOf(media.KindAudio) {
		track.Segments = nil
	}

	plan, err := BuildPlan(req)
	if err != nil {
		t.Fatal(err)
	}
	if plan.HasAudio {
		t.Error("expected no audio")
	}
	if strings.Contains(strings.Join(plan.Args, " "), "[aout]") {
		t.Error("audio output must not be mapped")
	}
}

func TestBuildPlan_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ports.ExportRequest)
		want   error
	}{
		{"partial opacity", func(r *ports.ExportRequest) { r.Instruction.Layers[0].SetOpacity(0.5, time.Second) }, ErrPartialOpacity},
		{"bad container", func(r *ports.ExportRequest) { r.Container = "avi" }, ErrInvalidRequest},
		{"bad preset", func(r *ports.ExportRequest) { r.Preset = "ultra" }, ErrInvalidRequest},
		{"no render size", func(r *ports.ExportRequest) { r.RenderConfig.RenderSize = media.Dimension{} }, ErrInvalidRequest},
		{"range mismatch", func(r *ports.ExportRequest) { r.Instruction.TimeRange = media.NewTimeRange(0, time.Second) }, ErrInvalidRequest},
		{"no composition", func(r *ports.ExportRequest) { r.Composition = nil }, ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mergeRequest(t)
			tt.mutate(&req)
			if _, err := BuildPlan(req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	tests := map[time.Duration]string{
		0:                       "0",
		5 * time.Second:         "5",
		1500 * time.Millisecond: "1.5",
		time.Nanosecond:         "0.000000001",
		6976 * time.Millisecond: "6.976",
	}
	for d, want := range tests {
		if got := seconds(d); got != want {
			t.Errorf("seconds(%s): expected %s, got %s", d, want, got)
		}
	}
}
