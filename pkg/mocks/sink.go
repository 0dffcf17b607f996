package mocks

import (
	"sync"

	"github.com/user/clipmerge/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SourcesJSON     []byte
	TimelineJSON    []byte
	InstructionJSON []byte
	TimelinePNG     []byte
	FilterGraph     []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSourcesJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesJSON = data
	return nil
}

func (m *DebugSink) SaveTimelineJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveInstructionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InstructionJSON = data
	return nil
}

func (m *DebugSink) SaveTimelinePNG(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimelinePNG = data
	return nil
}

func (m *DebugSink) SaveFilterGraph(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilterGraph = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                         { return false }
func (m *NullSink) SaveSourcesJSON(data []byte) error     { return nil }
func (m *NullSink) SaveTimelineJSON(data []byte) error    { return nil }
func (m *NullSink) SaveInstructionJSON(data []byte) error { return nil }
func (m *NullSink) SaveTimelinePNG(data []byte) error     { return nil }
func (m *NullSink) SaveFilterGraph(data []byte) error     { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
