// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

// MediaProber is a mock implementation of ports.MediaProber.
// Sources are served from a path-keyed map unless ProbeFunc is set.
type MediaProber struct {
	mu      sync.Mutex
	Sources map[string]*media.Source

	ProbeFunc func(ctx context.Context, path string) (*media.Source, error)

	// Recorded calls for verification
	ProbeCalls []string
}

// NewMediaProber creates a prober that serves the given sources by path.
func NewMediaProber(sources ...*media.Source) *MediaProber {
	m := &MediaProber{Sources: make(map[string]*media.Source)}
	for _, s := range sources {
		m.Sources[s.Path] = s
	}
	return m
}

func (m *MediaProber) Probe(ctx context.Context, path string) (*media.Source, error) {
	m.mu.Lock()
	m.ProbeCalls = append(m.ProbeCalls, path)
	m.mu.Unlock()

	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if src, ok := m.Sources[path]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, path)
}

var _ ports.MediaProber = (*MediaProber)(nil)
