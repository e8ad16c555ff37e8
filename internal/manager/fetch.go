package manager

import (
	"context"
	"errors"
	"os"

	"translatord/internal/storage"
	"translatord/pkg/types"
)

// EnsureLocal makes sure the pair's artifact bundle exists on local disk.
// An existing bundle with overwrite=false is a no-op success, which makes
// the call idempotent and cheap to issue defensively before cache loads.
func (m *Manager) EnsureLocal(ctx context.Context, pair string, overwrite bool) error {
	modelID, err := m.Resolve(pair)
	if err != nil {
		return err
	}
	pair = normalizePair(pair)
	dir := m.bundleDir(pair)
	if m.bundleExists(pair) && !overwrite {
		m.log.Debug().Str("pair", pair).Str("dir", dir).
			Msg("bundle already exists locally, fetch skipped")
		return nil
	}

	switch m.mode {
	case types.StorageLocal:
		return m.fetchFromHub(ctx, pair, modelID)
	case types.StorageS3:
		return m.fetchFromStorage(ctx, pair)
	}
	// Unreachable: mode validated at construction.
	return fetchError{pair: pair, cause: errors.New("unknown storage mode")}
}

// fetchFromHub converts the hub model into a local bundle. A conversion
// failure leaves the bundle absent so one bad pair cannot poison a
// multi-pair startup load with a half-written directory.
func (m *Manager) fetchFromHub(ctx context.Context, pair, modelID string) error {
	dir := m.bundleDir(pair)
	m.log.Info().Str("pair", pair).Str("model", modelID).
		Msg("downloading and converting hub model")
	if err := m.converter.ConvertAndDownload(ctx, modelID, dir); err != nil {
		m.log.Error().Err(err).Str("pair", pair).Str("model", modelID).
			Msg("hub conversion failed")
		_ = os.RemoveAll(dir)
		return fetchError{pair: pair, cause: err}
	}
	m.log.Info().Str("pair", pair).Str("dir", dir).Msg("bundle saved locally")
	return nil
}

// fetchFromStorage mirrors the pair's bundle from the storage backend.
// A missing remote prefix surfaces as artifact-missing, never as an opaque
// backend error.
func (m *Manager) fetchFromStorage(ctx context.Context, pair string) error {
	dir := m.bundleDir(pair)
	m.log.Info().Str("pair", pair).Str("bucket", m.bucket).
		Msg("downloading bundle from object storage")
	err := m.backend.DownloadDirectory(ctx, m.bucket, remotePrefix(pair), dir)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return artifactMissingError{pair: pair, dir: dir, remote: true}
		}
		m.log.Error().Err(err).Str("pair", pair).Msg("storage download failed")
		_ = os.RemoveAll(dir)
		return fetchError{pair: pair, cause: err}
	}
	return nil
}
