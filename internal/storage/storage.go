// Package storage abstracts where model artifact bundles live when they are
// not on local disk. The manager only ever talks to the Backend interface;
// concrete implementations are a local no-op pass-through and an S3 client.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested object or prefix does not exist
// in the backend. Callers translate it into their own error taxonomy.
var ErrNotFound = errors.New("storage: object not found")

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Backend is the storage contract consumed by the artifact fetcher.
// All operations are synchronous; directory operations preserve relative
// paths on both sides.
type Backend interface {
	UploadFile(ctx context.Context, bucket, localPath, key string) error
	UploadDirectory(ctx context.Context, bucket, localDir, prefix string) error
	DownloadFile(ctx context.Context, bucket, key, localPath string) error
	DownloadDirectory(ctx context.Context, bucket, prefix, localDir string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
