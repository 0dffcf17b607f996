package ports

import (
	"context"
	"time"
)

// AuthorizationStatus is the state of library write access.
type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "not_determined"
	AuthorizationGranted       AuthorizationStatus = "granted"
	AuthorizationDenied        AuthorizationStatus = "denied"
)

// Grant is a capability token for writing to a library.
// The zero value grants nothing.
type Grant struct {
	status   AuthorizationStatus
	issuedAt time.Time
}

// NewGrant records the outcome of an authorization decision.
func NewGrant(status AuthorizationStatus, issuedAt time.Time) Grant {
	return Grant{status: status, issuedAt: issuedAt}
}

// Authorized reports whether the grant allows writing.
func (g Grant) Authorized() bool {
	return g.status == AuthorizationGranted
}

// Status returns the decision carried by the grant.
func (g Grant) Status() AuthorizationStatus {
	if g.status == "" {
		return AuthorizationNotDetermined
	}
	return g.status
}

// IssuedAt returns when the decision was made.
func (g Grant) IssuedAt() time.Time {
	return g.issuedAt
}

// Authorizer decides whether the library may be written to.
type Authorizer interface {
	// Authorize returns the current grant, asking for it if undetermined.
	Authorize(ctx context.Context) (Grant, error)
}

// Asset is a file persisted in a library.
type Asset struct {
	ID       string
	Location string // Path or object URL of the stored copy
	Size     int64
}

// Library persists exported files as new assets.
type Library interface {
	// Save stores the file at path. It fails when the grant is not authorized.
	Save(ctx context.Context, grant Grant, path string) (Asset, error)
}
