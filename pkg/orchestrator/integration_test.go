package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/adapters/authorizer"
	"github.com/user/clipmerge/pkg/adapters/dirlibrary"
	"github.com/user/clipmerge/pkg/adapters/ffmpegexport"
	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/adapters/filesink"
	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/adapters/mp4probe"
	"github.com/user/clipmerge/pkg/adapters/osfilesystem"
	"github.com/user/clipmerge/pkg/adapters/smartprober"
	"github.com/user/clipmerge/pkg/adapters/timelineviz"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
	"github.com/user/clipmerge/pkg/stages/complete"
	"github.com/user/clipmerge/pkg/stages/export"
	"github.com/user/clipmerge/pkg/stages/instruction"
	"github.com/user/clipmerge/pkg/stages/load"
	"github.com/user/clipmerge/pkg/stages/timeline"
)

// TestOrchestrator_RealPipeline runs every real adapter against clips generated with ffmpeg.
func TestOrchestrator_RealPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ffmpeg pipeline in short mode")
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
	first := gen("first.mp4", "-f", "lavfi", "-i", "testsrc=size=640x360:rate=30:duration=1", "-c:v", "libx264", "-pix_fmt", "yuv420p")
	second := gen("second.mp4", "-f", "lavfi", "-i", "testsrc2=size=320x240:rate=30:duration=2", "-c:v", "libx264", "-pix_fmt", "yuv420p")
	music := gen("music.m4a", "-f", "lavfi", "-i", "sine=frequency=440:duration=5", "-c:a", "aac")

	fs := osfilesystem.New()
	log := logger.NewNoop()
	debugDir := filepath.Join(dir, "debug")
	sink := filesink.New(debugDir, fs)
	libraryDir := filepath.Join(dir, "library")

	o := New(
		load.NewStage(smartprober.New(smartprober.Options{}, log)),
		timeline.NewStage(),
		instruction.NewStage(),
		export.NewStage(export.NewExporter(ffmpegexport.New(ffmpeg, fs, sink, log), fs, log)),
		complete.NewStage(complete.NewHandler(dirlibrary.New(libraryDir, fs), log)),
		authorizer.NewStatic(ports.AuthorizationGranted),
		timelineviz.New(),
		sink,
		log,
	)

	config := DefaultConfig()
	config.FirstVideoPath = first
	config.SecondVideoPath = second
	config.AudioPath = music
	config.OutputDir = filepath.Join(dir, "out")
	config.Preset = ports.PresetLow

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := o.Run(ctx, config)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Saved() {
		t.Fatalf("expected saved outcome, got %+v", result.Completion)
	}

	out, err := mp4probe.New().Probe(ctx, result.Export.OutputPath)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	if d := out.Duration - 3*time.Second; d < -100*time.Millisecond || d > 100*time.Millisecond {
		t.Errorf("expected ~3s output, got %s", out.Duration)
	}
	if vt, ok := out.FirstTrack(media.KindVideo); !ok || vt.Width != 320 || vt.Height != 240 {
		t.Errorf("expected 320x240 video from the second clip, got %+v", vt)
	}

	for _, name := range []string{filesink.SourcesFile, filesink.TimelineFile, filesink.InstructionFile, filesink.TimelinePNGFile, filesink.FilterGraphFile} {
		if _, err := os.Stat(filepath.Join(debugDir, name)); err != nil {
			t.Errorf("expected debug file %s: %v", name, err)
		}
	}
	if entries, _ := os.ReadDir(libraryDir); len(entries) != 1 {
		t.Errorf("expected one library asset, got %d", len(entries))
	}
}
