package manager

import (
	"context"

	"translatord/pkg/types"
)

// SaveOrPublish provisions the pair's bundle from the model hub and, in s3
// mode, publishes it to object storage under the pair's conventional
// prefix. In local mode the call is local materialization only.
func (m *Manager) SaveOrPublish(ctx context.Context, pair string) error {
	modelID, err := m.Resolve(pair)
	if err != nil {
		return err
	}
	pair = normalizePair(pair)

	// Publishing always sources from the hub, regardless of storage mode:
	// the storage backend is the destination here, not the origin.
	if !m.bundleExists(pair) || m.overwrite {
		if err := m.fetchFromHub(ctx, pair, modelID); err != nil {
			return err
		}
	}

	if m.mode != types.StorageS3 {
		return nil
	}
	dir := m.bundleDir(pair)
	m.log.Info().Str("pair", pair).Str("bucket", m.bucket).
		Msg("publishing bundle to object storage")
	if err := m.backend.UploadDirectory(ctx, m.bucket, dir, remotePrefix(pair)); err != nil {
		return fetchError{pair: pair, cause: err}
	}
	return nil
}
