// Package ffprobe reads media layout by running the ffprobe tool.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

// ErrNoDuration is returned when ffprobe reports neither a format nor a stream duration.
var ErrNoDuration = errors.New("ffprobe: no duration reported")

// output mirrors the subset of `ffprobe -print_format json` we read.
type output struct {
	Format  format   `json:"format"`
	Streams []stream `json:"streams"`
}

type format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  string `json:"duration"`
}

// Prober implements ports.MediaProber with an ffprobe subprocess.
type Prober struct {
	path string // Empty means discover on first use
}

// New creates a Prober. An empty path discovers ffprobe via fftools.
func New(path string) *Prober {
	return &Prober{path: path}
}

// Probe runs ffprobe on path.
func (p *Prober) Probe(ctx context.Context, path string) (*media.Source, error) {
	bin := p.path
	if bin == "" {
		found, err := fftools.FindFFprobe()
		if err != nil {
			return nil, err
		}
		bin = found
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	src, err := Parse(out)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// Parse converts ffprobe JSON output into a Source.
func Parse(data []byte) (*media.Source, error) {
	var out output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse output: %w", err)
	}

	src := &media.Source{}
	counts := make(map[media.Kind]int)
	for _, s := range out.Streams {
		var kind media.Kind
		switch s.CodecType {
		case "video":
			kind = media.KindVideo
		case "audio":
			kind = media.KindAudio
		default:
			continue
		}

		d, err := parseSeconds(s.Duration)
		if err != nil {
			return nil, fmt.Errorf("stream %d duration: %w", s.Index, err)
		}

		track := media.Track{
			ID:       s.Index + 1,
			Kind:     kind,
			Index:    counts[kind],
			Codec:    s.CodecName,
			Duration: d,
		}
		if kind == media.KindVideo {
			track.Width = s.Width
			track.Height = s.Height
		}
		counts[kind]++
		src.Tracks = append(src.Tracks, track)
	}

	d, err := parseSeconds(out.Format.Duration)
	if err != nil {
		return nil, fmt.Errorf("format duration: %w", err)
	}
	src.Duration = d
	if src.Duration == 0 {
		for _, t := range src.Tracks {
			if t.Duration > src.Duration {
				src.Duration = t.Duration
			}
		}
	}
	if src.Duration == 0 {
		return nil, ErrNoDuration
	}
	return src, nil
}

// parseSeconds parses ffprobe's decimal seconds exactly. "N/A" and "" are zero.
func parseSeconds(s string) (time.Duration, error) {
	if s == "" || s == "N/A" {
		return 0, nil
	}
	return time.ParseDuration(s + "s")
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
