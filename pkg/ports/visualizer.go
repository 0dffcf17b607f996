package ports

import (
	"github.com/user/clipmerge/pkg/composition"
)

// TimelineVisualizer draws a composition and its instruction as an image.
type TimelineVisualizer interface {
	// RenderPNG returns PNG data of the given width.
	RenderPNG(c *composition.Composition, in composition.Instruction, width int) ([]byte, error)
}
