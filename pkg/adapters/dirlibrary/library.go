// Package dirlibrary stores exported videos in a local library directory.
package dirlibrary

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/user/clipmerge/pkg/ports"
)

// ErrNotAuthorized is returned when Save is called without a granted token.
var ErrNotAuthorized = errors.New("dirlibrary: not authorized")

// Library copies files into dir under a fresh UUID name.
type Library struct {
	dir   string
	fs    ports.FileSystem
	newID func() string
}

// New creates a Library rooted at dir.
func New(dir string, fs ports.FileSystem) *Library {
	return &Library{
		dir:   dir,
		fs:    fs,
		newID: uuid.NewString,
	}
}

// Save copies the file at path into the library as a new asset.
func (l *Library) Save(ctx context.Context, grant ports.Grant, path string) (ports.Asset, error) {
	if !grant.Authorized() {
		return ports.Asset{}, fmt.Errorf("%w: grant is %s", ErrNotAuthorized, grant.Status())
	}
	if err := ctx.Err(); err != nil {
		return ports.Asset{}, err
	}

	if err := l.fs.MkdirAll(l.dir); err != nil {
		return ports.Asset{}, fmt.Errorf("create library dir: %w", err)
	}

	id := l.newID()
	dst := filepath.Join(l.dir, id+strings.ToLower(filepath.Ext(path)))
	if err := l.fs.Copy(path, dst); err != nil {
		return ports.Asset{}, fmt.Errorf("copy to library: %w", err)
	}

	size, err := l.fs.Size(dst)
	if err != nil {
		return ports.Asset{}, fmt.Errorf("stat library asset: %w", err)
	}

	return ports.Asset{ID: id, Location: dst, Size: size}, nil
}

// Ensure Library implements ports.Library
var _ ports.Library = (*Library)(nil)
