package ports

import (
	"context"

	"github.com/user/clipmerge/pkg/media"
)

// MediaProber reads duration and track layout from a media file.
type MediaProber interface {
	// Probe loads the file at path. It does not decode samples.
	Probe(ctx context.Context, path string) (*media.Source, error)
}
