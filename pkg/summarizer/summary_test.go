package summarizer

import (
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/media"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithSource(t *testing.T) {
	clip := &media.Source{
		Path:     "a.mp4",
		Duration: 5 * time.Second,
		Tracks: []media.Track{
			{ID: 1, Kind: media.KindAudio, Codec: "mp4a"},
			{ID: 2, Kind: media.KindVideo, Codec: "avc1", Width: 1920, Height: 1080},
		},
	}
	music := &media.Source{Path: "audio.mp3", Duration: 30 * time.Second, Tracks: []media.Track{{ID: 1, Kind: media.KindAudio, Codec: "mp3"}}}

	summary := NewBuilder().
		WithSource("First video", clip).
		WithSource("Second video", nil).
		WithSource("Audio", music).
		Build()

	if len(summary.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(summary.Sources))
	}
	first := summary.Sources[0]
	if first.Codec != "avc1" || first.Size != (media.Dimension{Width: 1920, Height: 1080}) {
		t.Errorf("video source should describe its video track, got %+v", first)
	}
	audio := summary.Sources[1]
	if audio.Role != "Audio" || audio.Codec != "mp3" || !audio.Size.IsZero() {
		t.Errorf("unexpected audio source %+v", audio)
	}
}

func TestBuilder_Sections(t *testing.T) {
	summary := NewBuilder().
		WithComposition(CompositionInfo{TotalDuration: 12 * time.Second, SeamAt: 5 * time.Second}).
		WithExport(ExportInfo{Status: "succeeded", FileSize: 2048}).
		WithLibrary(LibraryInfo{Outcome: "saved", AssetID: "abc"}).
		Build()

	if summary.Composition.SeamAt != 5*time.Second {
		t.Errorf("unexpected composition %+v", summary.Composition)
	}
	if summary.Export.FileSize != 2048 || summary.Library.AssetID != "abc" {
		t.Errorf("unexpected export/library %+v %+v", summary.Export, summary.Library)
	}
}
