package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/mocks"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2025, 3, 4, 9, 41, 7, 0, time.UTC),
		Sources: []SourceInfo{
			{Role: "First video", Path: "assets/video2.mp4", Duration: 5 * time.Second, Codec: "avc1", Size: media.Dimension{Width: 3840, Height: 2160}},
			{Role: "Second video", Path: "assets/video1.mp4", Duration: 7 * time.Second, Codec: "hvc1", Size: media.Dimension{Width: 1280, Height: 720}},
			{Role: "Audio", Path: "assets/audio.mp3", Duration: 30 * time.Second, Codec: "mp3"},
		},
		Composition: CompositionInfo{
			TotalDuration: 12 * time.Second,
			SeamAt:        5 * time.Second,
			RenderSize:    media.Dimension{Width: 1280, Height: 720},
			FrameRate:     30,
		},
		Export: ExportInfo{
			Status:           "succeeded",
			OutputPath:       "out/mergeVideo-March 4, 2025 at 09.41.07.mov",
			Container:        "mov",
			Preset:           "highest",
			NetworkOptimized: true,
			FileSize:         3 * 1024 * 1024,
			Elapsed:          1500 * time.Millisecond,
		},
		Library: LibraryInfo{
			Outcome:  "saved",
			AssetID:  "5f0c",
			Location: "library/5f0c.mov",
		},
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Merge Summary",
		"2025-03-04T09:41:07Z",
		"| First video | assets/video2.mp4 | 5.000 s | avc1 | 3840x2160 |",
		"| Audio | assets/audio.mp3 | 30.000 s | mp3 | - |",
		"| Total Duration | 12.000 s |",
		"| Cut At | 5.000 s |",
		"| Render Size | 1280x720 |",
		"| Frame Rate | 30.00 fps |",
		"| Network Optimized | Yes |",
		"| File Size | 3.00 MB |",
		"| Export Time | 1.500 s |",
		"| Asset ID | 5f0c |",
		"Generated by clipmerge",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "| Error |") {
		t.Error("no error row expected for a successful run")
	}
}

func TestMarkdownFormatter_Format_Failure(t *testing.T) {
	s := testSummary()
	s.Export = ExportInfo{Status: "failed", Container: "mov", Preset: "highest", Error: "export video: export failed: exit status 1"}
	s.Library = LibraryInfo{Outcome: "skipped"}

	result := NewMarkdownFormatter().Format(s)

	for _, check := range []string{
		"| Status | failed |",
		"| Output | - |",
		"| Error | export video: export failed: exit status 1 |",
		"| Outcome | skipped |",
	} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "File Size") || strings.Contains(result, "Asset ID") {
		t.Error("size and asset rows should be omitted")
	}
}

func TestEscape(t *testing.T) {
	if got := escape("a|b"); got != `a\|b` {
		t.Errorf("unexpected %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "summary" }), fs)

	if err := w.Write("reports/run.md", testSummary()); err != nil {
		t.Fatal(err)
	}
	data, ok := fs.GetFile("reports/run.md")
	if !ok || string(data) != "summary" {
		t.Errorf("unexpected file content %q", data)
	}
}
