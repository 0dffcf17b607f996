package ffmpegexport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

const (
	videoOutLabel = "vout"
	audioOutLabel = "aout"
	audioBitrate  = "192k"
)

// encoderSettings maps a quality preset to x264 parameters.
type encoderSettings struct {
	Preset string
	CRF    int
}

var presetSettings = map[ports.QualityPreset]encoderSettings{
	ports.PresetHighest: {Preset: "slow", CRF: 18},
	ports.PresetHigh:    {Preset: "medium", CRF: 20},
	ports.PresetMedium:  {Preset: "medium", CRF: 23},
	ports.PresetLow:     {Preset: "veryfast", CRF: 28},
}

// Plan is a fully resolved ffmpeg invocation.
type Plan struct {
	Inputs      []string
	FilterGraph string
	Args        []string // Arguments after the ffmpeg binary
	HasAudio    bool
}

// BuildPlan translates an export request into ffmpeg arguments.
//
// Every distinct source file becomes one input. Video layers are drawn
// bottom-up over a black canvas, each segment trimmed, shifted to its target
// time and letterboxed to the render size. An overlay is only enabled while
// its layer is fully opaque.
func BuildPlan(req ports.ExportRequest) (*Plan, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	comp := req.Composition
	rc := req.RenderConfig
	fps := rc.FrameRate
	if fps <= 0 {
		fps = composition.DefaultFrameRate
	}
	total := req.Instruction.TimeRange.Duration

	p := &Plan{}
	inputIndex := make(map[*media.Source]int)
	for _, src := range comp.Sources() {
		inputIndex[src] = len(p.Inputs)
		p.Inputs = append(p.Inputs, src.Path)
	}

	var chains []string
	chains = append(chains, fmt.Sprintf("color=c=black:s=%dx%d:r=%s:d=%s[base]",
		rc.RenderSize.Width, rc.RenderSize.Height, formatFloat(fps), seconds(total)))

	current := "base"
	n := 0
	for i := len(req.Instruction.Layers) - 1; i >= 0; i-- {
		layer := req.Instruction.Layers[i]
		for _, seg := range layer.Track.Segments {
			enable, err := enableExpr(layer, seg.Target)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			if enable == "" {
				continue
			}

			clip := fmt.Sprintf("v%d", n)
			out := fmt.Sprintf("o%d", n)
			chains = append(chains, fmt.Sprintf(
				"[%d:v:%d]trim=start=%s:end=%s,setpts=PTS-STARTPTS+%s/TB,"+
					"scale=%d:%d:force_original_aspect_ratio=decrease,"+
					"pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,fps=%s[%s]",
				inputIndex[seg.Source], seg.SourceTrack.Index,
				seconds(seg.SourceRange.Start), seconds(seg.SourceRange.End()),
				seconds(seg.Target.Start),
				rc.RenderSize.Width, rc.RenderSize.Height,
				rc.RenderSize.Width, rc.RenderSize.Height,
				formatFloat(fps), clip))
			chains = append(chains, fmt.Sprintf("[%s][%s]overlay=eof_action=pass:enable='%s'[%s]",
				current, clip, enable, out))
			current = out
			n++
		}
	}
	chains = append(chains, fmt.Sprintf("[%s]format=yuv420p[%s]", current, videoOutLabel))

	var audioLabels []string
	for _, track := range comp.TracksOf(media.KindAudio) {
		for _, seg := range track.Segments {
			label := fmt.Sprintf("a%d", len(audioLabels))
			delay := seg.Target.Start.Milliseconds()
			chains = append(chains, fmt.Sprintf(
				"[%d:a:%d]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS,adelay=%d:all=1[%s]",
				inputIndex[seg.Source], seg.SourceTrack.Index,
				seconds(seg.SourceRange.Start), seconds(seg.SourceRange.End()),
				delay, label))
			audioLabels = append(audioLabels, label)
		}
	}

	switch len(audioLabels) {
	case 0:
	case 1:
		chains = append(chains, fmt.Sprintf("[%s]anull[%s]", audioLabels[0], audioOutLabel))
	default:
		var in strings.Builder
		for _, l := range audioLabels {
			in.WriteString("[" + l + "]")
		}
		chains = append(chains, fmt.Sprintf("%samix=inputs=%d:duration=longest:normalize=0[%s]",
			in.String(), len(audioLabels), audioOutLabel))
	}
	p.HasAudio = len(audioLabels) > 0
	p.FilterGraph = strings.Join(chains, ";\n")

	p.Args = buildArgs(p, req, fps, total)
	return p, nil
}

func buildArgs(p *Plan, req ports.ExportRequest, fps float64, total time.Duration) []string {
	settings := presetSettings[req.Preset]

	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-n"}
	for _, in := range p.Inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", p.FilterGraph,
		"-map", "["+videoOutLabel+"]",
	)
	if p.HasAudio {
		args = append(args, "-map", "["+audioOutLabel+"]")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", settings.Preset,
		"-crf", strconv.Itoa(settings.CRF),
		"-pix_fmt", "yuv420p",
		"-r", formatFloat(fps),
	)
	if p.HasAudio {
		args = append(args, "-c:a", "aac", "-b:a", audioBitrate)
	}
	args = append(args, "-t", seconds(total), "-f", string(req.Container))
	if req.NetworkOptimized {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, req.OutputPath)
}

func validate(req ports.ExportRequest) error {
	if req.Composition == nil {
		return fmt.Errorf("%w: no composition", ErrInvalidRequest)
	}
	if err := req.Instruction.Validate(req.Composition); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.RenderConfig.RenderSize.IsZero() {
		return fmt.Errorf("%w: render size %s", ErrInvalidRequest, req.RenderConfig.RenderSize)
	}
	if !req.Container.Valid() {
		return fmt.Errorf("%w: container %q", ErrInvalidRequest, req.Container)
	}
	if _, ok := presetSettings[req.Preset]; !ok {
		return fmt.Errorf("%w: preset %q", ErrInvalidRequest, req.Preset)
	}
	if req.OutputPath == "" {
		return fmt.Errorf("%w: no output path", ErrInvalidRequest)
	}
	return nil
}

// enableExpr returns the overlay enable expression for the spans of r where
// the layer is fully opaque, or "" if it is never visible.
func enableExpr(layer *composition.LayerInstruction, r media.TimeRange) (string, error) {
	var terms []string
	for _, iv := range layer.Intervals(r) {
		switch iv.Opacity {
		case 1:
			terms = append(terms, fmt.Sprintf("gte(t,%s)*lt(t,%s)", seconds(iv.Range.Start), seconds(iv.Range.End())))
		case 0:
		default:
			return "", fmt.Errorf("%w: %v at %s", ErrPartialOpacity, iv.Opacity, iv.Range.Start)
		}
	}
	return strings.Join(terms, "+"), nil
}

// seconds formats d as exact decimal seconds.
func seconds(d time.Duration) string {
	whole := d / time.Second
	frac := d % time.Second
	if frac == 0 {
		return strconv.FormatInt(int64(whole), 10)
	}
	s := fmt.Sprintf("%d.%09d", whole, frac)
	return strings.TrimRight(s, "0")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
