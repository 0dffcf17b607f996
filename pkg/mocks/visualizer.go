package mocks

import (
	"github.com/user/clipmerge/pkg/composition"
	"github.com/user/clipmerge/pkg/ports"
)

// TimelineVisualizer is a mock implementation of ports.TimelineVisualizer.
type TimelineVisualizer struct {
	RenderPNGFunc func(c *composition.Composition, in composition.Instruction, width int) ([]byte, error)

	RenderCalled bool
}

func (m *TimelineVisualizer) RenderPNG(c *composition.Composition, in composition.Instruction, width int) ([]byte, error) {
	m.RenderCalled = true
	if m.RenderPNGFunc != nil {
		return m.RenderPNGFunc(c, in, width)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.TimelineVisualizer = (*TimelineVisualizer)(nil)
