package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/user/clipmerge/pkg/ports"
)

// Authorizer is a mock implementation of ports.Authorizer.
type Authorizer struct {
	mu sync.Mutex

	Status        ports.AuthorizationStatus
	AuthorizeFunc func(ctx context.Context) (ports.Grant, error)

	// Recorded calls for verification
	Calls int
}

func (m *Authorizer) Authorize(ctx context.Context) (ports.Grant, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx)
	}
	return ports.NewGrant(m.Status, time.Now()), nil
}

var _ ports.Authorizer = (*Authorizer)(nil)

// Library is a mock implementation of ports.Library.
// It refuses unauthorized grants like a real library does.
type Library struct {
	mu sync.Mutex

	SaveFunc func(ctx context.Context, grant ports.Grant, path string) (ports.Asset, error)

	// Saved assets for verification
	Assets []ports.Asset
}

func (m *Library) Save(ctx context.Context, grant ports.Grant, path string) (ports.Asset, error) {
	if m.SaveFunc != nil {
		asset, err := m.SaveFunc(ctx, grant, path)
		if err == nil {
			m.mu.Lock()
			m.Assets = append(m.Assets, asset)
			m.mu.Unlock()
		}
		return asset, err
	}
	if !grant.Authorized() {
		return ports.Asset{}, fmt.Errorf("library: grant is %s", grant.Status())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	asset := ports.Asset{ID: fmt.Sprintf("asset-%d", len(m.Assets)+1), Location: path}
	m.Assets = append(m.Assets, asset)
	return asset, nil
}

// Count returns the number of saved assets.
func (m *Library) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Assets)
}

var _ ports.Library = (*Library)(nil)
