package manager

import (
	"context"
	"path/filepath"
	"time"

	"translatord/internal/common/fsutil"
)

// requiredBundleFiles is the file set a bundle must contain before the
// runtime is asked to load it. Guards against partially written or
// wrong-format bundles silently producing garbage.
var requiredBundleFiles = []string{
	"encoder_model.onnx",
	"decoder_model.onnx",
	"decoder_with_past_model.onnx",
	"config.json",
	"tokenizer_config.json",
}

// missingBundleFiles returns the required files absent from dir.
func missingBundleFiles(dir string) []string {
	var missing []string
	for _, name := range requiredBundleFiles {
		if !fsutil.PathExists(filepath.Join(dir, name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

// getOrLoad returns the cached entry for a pair, loading it on first use.
// Concurrent calls for the same unseen pair collapse into a single load
// via singleflight; calls for different pairs proceed independently.
// Entries are never evicted unless MaxLoadedModels is configured.
func (m *Manager) getOrLoad(ctx context.Context, pair string) (*entry, error) {
	m.mu.RLock()
	e := m.entries[pair]
	m.mu.RUnlock()
	if e != nil {
		m.touch(e)
		m.log.Debug().Str("pair", pair).Msg("using cached model")
		return e, nil
	}

	v, err, _ := m.loadGroup.Do(pair, func() (any, error) {
		// Another flight may have completed between the read above and
		// this one joining the group.
		m.mu.RLock()
		cached := m.entries[pair]
		m.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		return m.loadEntry(ctx, pair)
	})
	if err != nil {
		return nil, err
	}
	e = v.(*entry)
	m.touch(e)
	return e, nil
}

// loadEntry materializes model and tokenizer handles from the bundle dir
// and inserts them into the cache.
func (m *Manager) loadEntry(ctx context.Context, pair string) (*entry, error) {
	dir := m.bundleDir(pair)
	if !fsutil.PathExists(dir) {
		return nil, artifactMissingError{pair: pair, dir: dir}
	}
	if missing := missingBundleFiles(dir); len(missing) > 0 {
		return nil, incompleteArtifactError{pair: pair, missing: missing}
	}
	// The runtime requires an absolute path: a relative one could be
	// mistaken for a hub identifier.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	m.log.Debug().Str("pair", pair).Str("dir", absDir).Msg("loading model from disk (first use)")
	model, err := m.runtime.LoadModel(ctx, absDir)
	if err != nil {
		return nil, fetchError{pair: pair, cause: err}
	}
	tokenizer, err := m.runtime.LoadTokenizer(ctx, absDir)
	if err != nil {
		_ = model.Close()
		return nil, fetchError{pair: pair, cause: err}
	}

	now := time.Now()
	e := &entry{pair: pair, model: model, tokenizer: tokenizer, loadedAt: now, lastUsed: now}

	m.mu.Lock()
	if m.maxLoaded > 0 && len(m.entries) >= m.maxLoaded {
		m.evictOldestLocked()
	}
	m.entries[pair] = e
	loadedModelsGauge.Set(float64(len(m.entries)))
	m.mu.Unlock()
	return e, nil
}

// evictOldestLocked removes the least recently used entry. Only reached
// when the optional MaxLoadedModels bound is configured; the default cache
// grows with the catalog, which is assumed small. Caller holds m.mu.
func (m *Manager) evictOldestLocked() {
	var lru *entry
	for _, e := range m.entries {
		if lru == nil || e.lastUsed.Before(lru.lastUsed) {
			lru = e
		}
	}
	if lru == nil {
		return
	}
	delete(m.entries, lru.pair)
	_ = lru.model.Close()
	m.log.Info().Str("pair", lru.pair).Msg("evicted least recently used model")
}

func (m *Manager) touch(e *entry) {
	m.mu.Lock()
	e.lastUsed = time.Now()
	m.mu.Unlock()
}

// LoadedPairs reports which pairs currently have in-memory entries.
func (m *Manager) LoadedPairs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.entries))
	for _, p := range m.pairs {
		if _, ok := m.entries[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Close releases every cached model handle. Called at process teardown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for pair, e := range m.entries {
		if err := e.model.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.entries, pair)
	}
	loadedModelsGauge.Set(0)
	return firstErr
}
