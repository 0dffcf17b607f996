package ffmpegexport

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/adapters/osfilesystem"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/mocks"
)

func TestEngine_InvalidRequestDoesNotRunFFmpeg(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	engine := New(filepath.Join(t.TempDir(), "no-ffmpeg"), mocks.NewFileSystem(), sink, nil)

	req := mergeRequest(t)
	req.Preset = "bogus"
	if err := engine.Export(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if sink.FilterGraph != nil {
		t.Error("filter graph should not be saved for an invalid request")
	}
}

func TestEngine_FailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ffmpeg")
	// Writes the output path (last argument) then fails.
	body := "#!/bin/sh\nfor last; do :; done\necho partial > \"$last\"\necho boom >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	sink := mocks.NewDebugSink(true)
	engine := New(script, osfilesystem.New(), sink, nil)

	req := mergeRequest(t)
	req.OutputPath = filepath.Join(dir, "out.mov")
	err := engine.Export(context.Background(), req)
	if !errors.Is(err, ErrFFmpegFailed) {
		t.Fatalf("expected ErrFFmpegFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected stderr in error, got %v", err)
	}
	if _, err := os.Stat(req.OutputPath); !os.IsNotExist(err) {
		t.Error("partial output should be removed")
	}
	if !strings.Contains(string(sink.FilterGraph), "# filter_complex") {
		t.Errorf("expected filter graph in debug sink, got %q", sink.FilterGraph)
	}
}

func TestEngine_Export_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !fftools.IsFFmpegAvailable() {
		t.Skip("ffmpeg not available")
	}
	ffmpeg, _ := fftools.FindFFmpeg()
	dir := t.TempDir()

	gen := func(name string, args ...string) string {
		path := filepath.Join(dir, name)
		cmd := exec.Command(ffmpeg, append(append([]string{"-hide_banner", "-loglevel", "error", "-y"}, args...), path)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("generate %s: %v: %s", name, err, out)
		}
		return path
	}
	aPath := gen("a.mp4", "-f", "lavfi", "-i", "testsrc=size=320x240:rate=30:duration=1", "-pix_fmt", "yuv420p")
	bPath := gen("b.mp4", "-f", "lavfi", "-i", "testsrc2=size=160x120:rate=30:duration=1", "-pix_fmt", "yuv420p")
	audioPath := gen("audio.m4a", "-f", "lavfi", "-i", "sine=frequency=440:duration=2", "-c:a", "aac")

	req := mergeRequest(t)
	paths := map[string]string{"a.mp4": aPath, "b.mp4": bPath, "audio.mp3": audioPath}
	for _, src := range req.Composition.Sources() {
		src.Path = paths[src.Path]
		src.Duration = time.Second
		if src.Tracks[0].Kind == media.KindAudio {
			src.Duration = 2 * time.Second
		}
	}
	// Rebuild the timings for one-second clips.
	tracks := req.Composition.Tracks
	tracks[0].Segments[0].SourceRange = media.NewTimeRange(0, time.Second)
	tracks[0].Segments[0].Target = media.NewTimeRange(0, time.Second)
	tracks[1].Segments[0].SourceRange = media.NewTimeRange(0, time.Second)
	tracks[1].Segments[0].Target = media.NewTimeRange(time.Second, time.Second)
	tracks[2].Segments[0].SourceRange = media.NewTimeRange(0, 2*time.Second)
	tracks[2].Segments[0].Target = media.NewTimeRange(0, 2*time.Second)
	req.Instruction.TimeRange = req.Composition.TimeRange()
	req.Instruction.Layers[0].Steps = nil
	req.Instruction.Layers[0].SetOpacity(0, time.Second)
	req.RenderConfig.RenderSize = media.Dimension{Width: 160, Height: 120}
	req.OutputPath = filepath.Join(dir, "merged.mov")

	engine := New("", osfilesystem.New(), nil, nil)
	if err := engine.Export(context.Background(), req); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected output file, got %v", err)
	}

	// Exporting again must not overwrite the existing file.
	if err := engine.Export(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest when output exists, got %v", err)
	}
	if _, err := os.Stat(req.OutputPath); err != nil {
		t.Error("existing output must not be removed")
	}
}
