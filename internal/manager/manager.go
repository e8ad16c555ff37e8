package manager

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"translatord/internal/common/fsutil"
	"translatord/internal/hub"
	"translatord/internal/seq2seq"
	"translatord/internal/storage"
	"translatord/pkg/types"
)

// ManagerConfig encapsulates all tunables for Manager construction.
// It is assembled once in main from file config and environment; the
// manager never reads the environment itself.
type ManagerConfig struct {
	// Pairs is the ordered catalog of supported translation pairs.
	Pairs []string
	// Mappings maps pairs to model hub identifiers. Entries for pairs not
	// in Pairs are dropped with a warning.
	Mappings map[string]string
	// StorageMode fixes where artifacts are sourced for the manager's
	// lifetime.
	StorageMode types.StorageMode
	// Bucket is the object-storage bucket; required in s3 mode.
	Bucket string
	// BaseDir is the local directory holding artifact bundles, one
	// subdirectory per pair.
	BaseDir string
	// Overwrite forces re-fetch of bundles that already exist locally.
	Overwrite bool
	// MaxLoadedModels bounds the in-memory cache; 0 means unbounded.
	MaxLoadedModels int

	// Backend is the storage client; may be nil in local mode, which
	// requires no credentials at all.
	Backend storage.Backend
	// Converter turns hub identifiers into local bundles.
	Converter hub.Converter
	// Runtime loads models/tokenizers and drives generation.
	Runtime seq2seq.Runtime

	Logger zerolog.Logger
}

// entry is a loaded (model, tokenizer) pair owned by the cache.
type entry struct {
	pair      string
	model     seq2seq.Model
	tokenizer seq2seq.Tokenizer
	loadedAt  time.Time
	lastUsed  time.Time
	// genMu serializes generation: runtime handles are not assumed safe
	// for concurrent use.
	genMu sync.Mutex
}

// Manager composes the resolver, fetcher, cache and inference driver
// behind the public translation operations.
type Manager struct {
	pairs     []string
	mappings  map[string]string
	mode      types.StorageMode
	bucket    string
	baseDir   string
	overwrite bool
	maxLoaded int

	backend   storage.Backend
	converter hub.Converter
	runtime   seq2seq.Runtime
	log       zerolog.Logger

	mu        sync.RWMutex
	entries   map[string]*entry
	loadGroup singleflight.Group
	startTime time.Time
}

// NewWithConfig constructs a Manager, filtering the raw mapping to the
// supported pair set.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	if len(cfg.Mappings) == 0 {
		return nil, fmt.Errorf("model mappings must be a non-empty map")
	}
	if !cfg.StorageMode.Valid() {
		return nil, fmt.Errorf("storage mode must be one of [%s %s], got %q",
			types.StorageLocal, types.StorageS3, cfg.StorageMode)
	}
	if cfg.StorageMode == types.StorageS3 {
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("bucket must be provided for %q storage mode", types.StorageS3)
		}
		if cfg.Backend == nil {
			return nil, fmt.Errorf("storage backend must be provided for %q storage mode", types.StorageS3)
		}
	}
	if cfg.Runtime == nil {
		return nil, fmt.Errorf("runtime must be provided")
	}

	pairs := make([]string, 0, len(cfg.Pairs))
	supported := make(map[string]bool, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || supported[p] {
			continue
		}
		supported[p] = true
		pairs = append(pairs, p)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("supported pairs must be a non-empty list")
	}

	mappings := make(map[string]string, len(cfg.Mappings))
	for k, v := range cfg.Mappings {
		key := strings.ToLower(strings.TrimSpace(k))
		if v == "" {
			continue
		}
		if !supported[key] {
			// Tolerated for partial configuration, but surfaced so a typo
			// in an operator-supplied mapping does not vanish silently.
			cfg.Logger.Warn().Str("pair", k).Str("model", v).
				Msg("dropping mapping for unsupported translation pair")
			continue
		}
		mappings[key] = v
	}

	m := &Manager{
		pairs:     pairs,
		mappings:  mappings,
		mode:      cfg.StorageMode,
		bucket:    cfg.Bucket,
		baseDir:   cfg.BaseDir,
		overwrite: cfg.Overwrite,
		maxLoaded: cfg.MaxLoadedModels,
		backend:   cfg.Backend,
		converter: cfg.Converter,
		runtime:   cfg.Runtime,
		log:       cfg.Logger,
		entries:   make(map[string]*entry),
		startTime: time.Now(),
	}
	m.log.Info().Str("storage_mode", string(m.mode)).
		Strs("pairs", m.supportedPairs()).
		Msg("translation manager initialized")
	return m, nil
}

// SupportedPairs returns the mapped pairs in catalog order.
func (m *Manager) SupportedPairs() []string { return m.supportedPairs() }

func (m *Manager) supportedPairs() []string {
	out := make([]string, 0, len(m.mappings))
	for _, p := range m.pairs {
		if _, ok := m.mappings[p]; ok {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		// Defensive ordering for error payloads when nothing is mapped.
		for p := range m.mappings {
			out = append(out, p)
		}
		sort.Strings(out)
	}
	return out
}

// bundleDir returns the local artifact directory for a pair.
func (m *Manager) bundleDir(pair string) string {
	return filepath.Join(m.baseDir, pair)
}

// remotePrefix returns the object-storage prefix holding a pair's bundle.
// The layout mirrors the local one: one prefix per pair.
func remotePrefix(pair string) string { return pair + "/" }

// bundleExists reports whether the pair's bundle directory is present.
func (m *Manager) bundleExists(pair string) bool {
	return fsutil.PathExists(m.bundleDir(pair))
}
