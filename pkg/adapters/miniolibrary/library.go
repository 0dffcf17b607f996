// Package miniolibrary uploads exported videos to a MinIO or S3 bucket.
package miniolibrary

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/user/clipmerge/pkg/ports"
)

// ErrNotAuthorized is returned when Save is called without a granted token.
var ErrNotAuthorized = errors.New("miniolibrary: not authorized")

// Config holds the bucket connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	Prefix    string // Object key prefix, e.g. "videos/"
}

// objectStore is the subset of *minio.Client used by the library.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Library stores each saved file as a new object.
type Library struct {
	cfg   Config
	store objectStore
	newID func() string

	mu          sync.Mutex
	bucketReady bool
}

// New connects a Library to the configured endpoint.
// No request is made until the first Save.
func New(cfg Config) (*Library, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("miniolibrary: endpoint and bucket are required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return newWithStore(cfg, client), nil
}

func newWithStore(cfg Config, store objectStore) *Library {
	return &Library{cfg: cfg, store: store, newID: uuid.NewString}
}

// Save uploads the file at p.
func (l *Library) Save(ctx context.Context, grant ports.Grant, p string) (ports.Asset, error) {
	if !grant.Authorized() {
		return ports.Asset{}, fmt.Errorf("%w: grant is %s", ErrNotAuthorized, grant.Status())
	}

	if err := l.ensureBucket(ctx); err != nil {
		return ports.Asset{}, err
	}

	id := l.newID()
	ext := strings.ToLower(filepath.Ext(p))
	object := path.Join(l.cfg.Prefix, id+ext)

	info, err := l.store.FPutObject(ctx, l.cfg.Bucket, object, p, minio.PutObjectOptions{
		ContentType: contentType(ext),
	})
	if err != nil {
		return ports.Asset{}, fmt.Errorf("upload %s: %w", object, err)
	}

	return ports.Asset{
		ID:       id,
		Location: fmt.Sprintf("s3://%s/%s", l.cfg.Bucket, object),
		Size:     info.Size,
	}, nil
}

func (l *Library) ensureBucket(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bucketReady {
		return nil
	}

	exists, err := l.store.BucketExists(ctx, l.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", l.cfg.Bucket, err)
	}
	if !exists {
		if err := l.store.MakeBucket(ctx, l.cfg.Bucket, minio.MakeBucketOptions{Region: l.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", l.cfg.Bucket, err)
		}
	}
	l.bucketReady = true
	return nil
}

func contentType(ext string) string {
	switch ext {
	case ".mov":
		return "video/quicktime"
	case ".mp4", ".m4v":
		return "video/mp4"
	}
	return "application/octet-stream"
}

// Ensure Library implements ports.Library
var _ ports.Library = (*Library)(nil)
