// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/clipmerge/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSourcesJSON does nothing.
func (s *Sink) SaveSourcesJSON(data []byte) error {
	return nil
}

// SaveTimelineJSON does nothing.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return nil
}

// SaveInstructionJSON does nothing.
func (s *Sink) SaveInstructionJSON(data []byte) error {
	return nil
}

// SaveTimelinePNG does nothing.
func (s *Sink) SaveTimelinePNG(data []byte) error {
	return nil
}

// SaveFilterGraph does nothing.
func (s *Sink) SaveFilterGraph(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
