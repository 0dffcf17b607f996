package mocks

import (
	"context"
	"sync"

	"github.com/user/clipmerge/pkg/ports"
)

// ExportEngine is a mock implementation of ports.ExportEngine.
// Without ExportFunc it writes Output to the request's output path on FS.
type ExportEngine struct {
	mu sync.Mutex

	ExportFunc func(ctx context.Context, req ports.ExportRequest) error

	FS     *FileSystem
	Output []byte

	// Recorded calls for verification
	Requests []ports.ExportRequest
}

func (m *ExportEngine) Export(ctx context.Context, req ports.ExportRequest) error {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, req)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FS != nil {
		output := m.Output
		if output == nil {
			output = []byte("moov")
		}
		return m.FS.WriteFile(req.OutputPath, output)
	}
	return nil
}

// Calls returns the number of Export calls.
func (m *ExportEngine) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

var _ ports.ExportEngine = (*ExportEngine)(nil)
