// Package smartprober picks a media prober by container type.
package smartprober

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/clipmerge/pkg/adapters/ffprobe"
	"github.com/user/clipmerge/pkg/adapters/fftools"
	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/adapters/mp4probe"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

// Backend identifies which prober produced a result.
type Backend string

const (
	// BackendMP4 is native ISO-BMFF box parsing.
	BackendMP4 Backend = "mp4"
	// BackendFFprobe is the ffprobe subprocess.
	BackendFFprobe Backend = "ffprobe"
)

// ErrNoProberAvailable is returned when the file needs ffprobe and it is missing.
var ErrNoProberAvailable = errors.New("smartprober: no prober available")

// isoExtensions are containers mp4ff can parse.
var isoExtensions = map[string]bool{
	".mp4": true,
	".m4v": true,
	".m4a": true,
	".mov": true,
}

// Options configures the smart prober.
type Options struct {
	// FFprobePath is an optional explicit ffprobe binary.
	FFprobePath string
}

// Prober routes ISO-BMFF files to the native parser and everything else,
// or anything the native parser rejects, to ffprobe.
type Prober struct {
	native      ports.MediaProber
	fallback    ports.MediaProber
	hasFallback func() bool
	logger      ports.Logger
}

// New creates a Prober with the mp4probe and ffprobe backends.
func New(opts Options, log ports.Logger) *Prober {
	hasFallback := fftools.IsFFprobeAvailable
	if opts.FFprobePath != "" {
		hasFallback = func() bool { return true }
	}
	p := NewWith(mp4probe.New(), ffprobe.New(opts.FFprobePath), log)
	p.hasFallback = hasFallback
	return p
}

// NewWith creates a Prober from explicit backends. The fallback is assumed present.
func NewWith(native, fallback ports.MediaProber, log ports.Logger) *Prober {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Prober{
		native:      native,
		fallback:    fallback,
		hasFallback: func() bool { return true },
		logger:      log.WithComponent("probe"),
	}
}

// Probe loads the file at path with the most suitable backend.
func (p *Prober) Probe(ctx context.Context, path string) (*media.Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	src, _, err := p.probe(ctx, path)
	return src, err
}

// BackendFor reports which backend is tried first for path.
func BackendFor(path string) Backend {
	if isoExtensions[strings.ToLower(filepath.Ext(path))] {
		return BackendMP4
	}
	return BackendFFprobe
}

func (p *Prober) probe(ctx context.Context, path string) (*media.Source, Backend, error) {
	if BackendFor(path) == BackendMP4 {
		src, err := p.native.Probe(ctx, path)
		if err == nil {
			p.logger.Debug("Probed %s with %s", path, BackendMP4)
			return src, BackendMP4, nil
		}
		if errors.Is(err, fs.ErrNotExist) || ctx.Err() != nil {
			return nil, BackendMP4, err
		}
		if !p.hasFallback() {
			return nil, BackendMP4, err
		}
		p.logger.Debug("Native probe of %s failed, falling back to ffprobe: %v", path, err)
	} else if !p.hasFallback() {
		return nil, BackendFFprobe, ErrNoProberAvailable
	}

	src, err := p.fallback.Probe(ctx, path)
	if err != nil {
		return nil, BackendFFprobe, err
	}
	p.logger.Debug("Probed %s with %s", path, BackendFFprobe)
	return src, BackendFFprobe, nil
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
