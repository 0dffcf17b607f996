package ffmpegexport

import "errors"

var (
	// ErrInvalidRequest is returned when a request cannot be rendered.
	ErrInvalidRequest = errors.New("ffmpegexport: invalid request")

	// ErrPartialOpacity is returned for opacity values other than 0 or 1.
	ErrPartialOpacity = errors.New("ffmpegexport: partial opacity not supported")

	// ErrFFmpegFailed is returned when the ffmpeg process exits with an error.
	ErrFFmpegFailed = errors.New("ffmpegexport: ffmpeg failed")
)
