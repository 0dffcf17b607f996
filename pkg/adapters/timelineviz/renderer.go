// Package timelineviz draws a composition timeline as a PNG using the gg library.
package timelineviz

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

// Layout constants in pixels.
const (
	DefaultWidth = 960
	minWidth     = 240

	marginLeft   = 90
	marginRight  = 20
	rulerHeight  = 30
	rowHeight    = 44
	rowGap       = 10
	marginBottom = 16
)

var (
	colorBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorRuler      = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorText       = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorVideo      = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	colorAudio      = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	colorHidden     = color.RGBA{0x00, 0x00, 0x00, 0x66}
	colorSeam       = color.RGBA{0xef, 0x44, 0x44, 0xff}
)

// Renderer implements ports.TimelineVisualizer.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderPNG draws one row per composition track. Spans where a video layer
// is transparent are shaded, and every segment boundary is marked.
func (r *Renderer) RenderPNG(c *composition.Composition, in composition.Instruction, width int) ([]byte, error) {
	if c == nil || len(c.Tracks) == 0 {
		return nil, fmt.Errorf("timelineviz: empty composition")
	}
	if width < minWidth {
		width = DefaultWidth
	}

	total := c.Duration()
	if total <= 0 {
		return nil, fmt.Errorf("timelineviz: composition has no duration")
	}

	height := rulerHeight + len(c.Tracks)*(rowHeight+rowGap) + marginBottom
	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	scale := float64(width-marginLeft-marginRight) / float64(total)
	x := func(t time.Duration) float64 {
		return marginLeft + float64(t)*scale
	}

	drawRuler(dc, total, x, height)

	layers := make(map[*composition.Track]*composition.LayerInstruction)
	for _, l := range in.Layers {
		if l != nil && l.Track != nil {
			layers[l.Track] = l
		}
	}

	for i, track := range c.Tracks {
		top := float64(rulerHeight + i*(rowHeight+rowGap))

		dc.SetColor(colorText)
		dc.DrawStringAnchored(fmt.Sprintf("%s %d", track.Kind, track.ID), 8, top+rowHeight/2, 0, 0.5)

		fill := colorVideo
		if track.Kind == media.KindAudio {
			fill = colorAudio
		}

		for _, seg := range track.Segments {
			x0, x1 := x(seg.Target.Start), x(seg.Target.End())
			dc.SetColor(fill)
			dc.DrawRoundedRectangle(x0, top, x1-x0, rowHeight, 4)
			dc.Fill()

			dc.SetColor(color.White)
			label := filepath.Base(seg.SourcePath())
			dc.DrawStringAnchored(label, x0+6, top+rowHeight/2, 0, 0.5)

			if layer, ok := layers[track]; ok {
				for _, iv := range layer.Intervals(seg.Target) {
					if iv.Opacity >= 1 {
						continue
					}
					hx0, hx1 := x(iv.Range.Start), x(iv.Range.End())
					dc.SetColor(colorHidden)
					dc.DrawRectangle(hx0, top, hx1-hx0, rowHeight)
					dc.Fill()
				}
			}

			dc.SetColor(colorSeam)
			dc.SetLineWidth(1)
			dc.DrawLine(x1, top-2, x1, top+rowHeight+2)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRuler(dc *gg.Context, total time.Duration, x func(time.Duration) float64, height int) {
	step := tickStep(total)

	dc.SetColor(colorRuler)
	dc.SetLineWidth(1)
	dc.DrawLine(x(0), rulerHeight-6, x(total), rulerHeight-6)
	dc.Stroke()

	for t := time.Duration(0); t <= total; t += step {
		tx := x(t)
		dc.SetColor(colorRuler)
		dc.DrawLine(tx, rulerHeight-10, tx, float64(height-marginBottom))
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(formatTick(t), tx, rulerHeight-18, 0.5, 0.5)
	}
}

// tickStep picks a ruler interval giving at most about 12 ticks.
func tickStep(total time.Duration) time.Duration {
	for _, step := range []time.Duration{
		100 * time.Millisecond, 500 * time.Millisecond,
		time.Second, 2 * time.Second, 5 * time.Second, 10 * time.Second,
		30 * time.Second, time.Minute, 5 * time.Minute, 10 * time.Minute,
	} {
		if total/step <= 12 {
			return step
		}
	}
	return 30 * time.Minute
}

func formatTick(t time.Duration) string {
	if t%time.Second == 0 {
		return fmt.Sprintf("%ds", int(t/time.Second))
	}
	return fmt.Sprintf("%.1fs", t.Seconds())
}

// Ensure Renderer implements ports.TimelineVisualizer
var _ ports.TimelineVisualizer = (*Renderer)(nil)
