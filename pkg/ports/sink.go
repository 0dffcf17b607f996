package ports

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSourcesJSON saves the probed sources as JSON.
	SaveSourcesJSON(data []byte) error

	// SaveTimelineJSON saves the assembled composition as JSON.
	SaveTimelineJSON(data []byte) error

	// SaveInstructionJSON saves the render instruction and config as JSON.
	SaveInstructionJSON(data []byte) error

	// SaveTimelinePNG saves the timeline visualization.
	SaveTimelinePNG(data []byte) error

	// SaveFilterGraph saves the ffmpeg filter graph and arguments.
	SaveFilterGraph(data []byte) error
}
