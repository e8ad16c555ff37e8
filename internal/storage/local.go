package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalBackend is the pass-through backend used in "local" storage mode.
// Artifacts already live on local disk, so transfer operations are no-ops;
// listing walks the base directory so callers can still introspect what is
// available.
type LocalBackend struct {
	baseDir string
	log     zerolog.Logger
}

// NewLocalBackend returns a Backend rooted at baseDir.
func NewLocalBackend(baseDir string, log zerolog.Logger) *LocalBackend {
	return &LocalBackend{baseDir: baseDir, log: log}
}

func (b *LocalBackend) UploadFile(ctx context.Context, bucket, localPath, key string) error {
	b.log.Debug().Str("path", localPath).Msg("local storage: upload is a no-op")
	return nil
}

func (b *LocalBackend) UploadDirectory(ctx context.Context, bucket, localDir, prefix string) error {
	b.log.Debug().Str("dir", localDir).Msg("local storage: upload is a no-op")
	return nil
}

func (b *LocalBackend) DownloadFile(ctx context.Context, bucket, key, localPath string) error {
	if _, err := os.Stat(filepath.Join(b.baseDir, filepath.FromSlash(key))); err != nil {
		return ErrNotFound
	}
	return nil
}

func (b *LocalBackend) DownloadDirectory(ctx context.Context, bucket, prefix, localDir string) error {
	if _, err := os.Stat(filepath.Join(b.baseDir, filepath.FromSlash(prefix))); err != nil {
		return ErrNotFound
	}
	return nil
}

// ListObjects walks baseDir/prefix and reports files with their paths
// relative to baseDir, mirroring the key layout a remote backend would use.
func (b *LocalBackend) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	root := filepath.Join(b.baseDir, filepath.FromSlash(prefix))
	if _, err := os.Stat(root); err != nil {
		return nil, ErrNotFound
	}
	var out []ObjectInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.baseDir, path)
		if err != nil {
			return err
		}
		out = append(out, ObjectInfo{Key: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
