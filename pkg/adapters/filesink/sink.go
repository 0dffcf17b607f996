// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/clipmerge/pkg/ports"
)

// File names written under the debug directory.
const (
	SourcesFile     = "sources.json"
	TimelineFile    = "timeline.json"
	InstructionFile = "instruction.json"
	TimelinePNGFile = "timeline.png"
	FilterGraphFile = "filtergraph.txt"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSourcesJSON saves the probed sources as JSON.
func (s *Sink) SaveSourcesJSON(data []byte) error {
	return s.save(SourcesFile, data)
}

// SaveTimelineJSON saves the assembled composition as JSON.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return s.save(TimelineFile, data)
}

// SaveInstructionJSON saves the render instruction as JSON.
func (s *Sink) SaveInstructionJSON(data []byte) error {
	return s.save(InstructionFile, data)
}

// SaveTimelinePNG saves the timeline visualization.
func (s *Sink) SaveTimelinePNG(data []byte) error {
	return s.save(TimelinePNGFile, data)
}

// SaveFilterGraph saves the ffmpeg invocation.
func (s *Sink) SaveFilterGraph(data []byte) error {
	return s.save(FilterGraphFile, data)
}

func (s *Sink) save(name string, data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
