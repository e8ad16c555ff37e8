package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"translatord/internal/seq2seq"
	"translatord/internal/storage"
	"translatord/pkg/types"
)

// fakeModel records generation calls and emits a fixed sequence.
type fakeModel struct {
	mu         sync.Mutex
	generates  int
	lastParams types.GenerationParams
	closed     bool
}

func (f *fakeModel) Generate(ctx context.Context, enc seq2seq.Encoding, params types.GenerationParams) ([][]int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generates++
	f.lastParams = params
	return [][]int32{{7, 8, 9}}, nil
}

func (f *fakeModel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeTokenizer echoes the encoded text back out of Decode.
type fakeTokenizer struct {
	mu       sync.Mutex
	lastText string
}

func (f *fakeTokenizer) Encode(ctx context.Context, text string) (seq2seq.Encoding, error) {
	f.mu.Lock()
	f.lastText = text
	f.mu.Unlock()
	return seq2seq.Encoding{InputIDs: []int32{1, 2, 3}, AttentionMask: []int32{1, 1, 1}}, nil
}

func (f *fakeTokenizer) Decode(ctx context.Context, ids []int32, skipSpecial bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastText, nil
}

// fakeRuntime counts loads so tests can assert single-load guarantees.
type fakeRuntime struct {
	mu              sync.Mutex
	modelLoads      int
	tokenizerLoads  int
	failModelLoad   bool
	lastModelDir    string
	loadedModels    []*fakeModel
	loadedTokenizer *fakeTokenizer
}

func (f *fakeRuntime) LoadModel(ctx context.Context, absDir string) (seq2seq.Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modelLoads++
	f.lastModelDir = absDir
	if f.failModelLoad {
		return nil, fmt.Errorf("fake runtime: load failure")
	}
	m := &fakeModel{}
	f.loadedModels = append(f.loadedModels, m)
	return m, nil
}

func (f *fakeRuntime) LoadTokenizer(ctx context.Context, absDir string) (seq2seq.Tokenizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenizerLoads++
	tk := &fakeTokenizer{}
	f.loadedTokenizer = tk
	return tk, nil
}

func (f *fakeRuntime) loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modelLoads
}

// fakeConverter writes a complete bundle on success and counts calls.
type fakeConverter struct {
	mu       sync.Mutex
	calls    int
	failFor  map[string]bool // keyed by model id
	noOutput bool
}

func (f *fakeConverter) ConvertAndDownload(ctx context.Context, modelID, destDir string) error {
	f.mu.Lock()
	f.calls++
	fail := f.failFor[modelID]
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("fake converter: cannot export %s", modelID)
	}
	if f.noOutput {
		return nil
	}
	writeBundle(nil, destDir)
	return nil
}

func (f *fakeConverter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeBackend keeps objects in a map keyed by object key.
type fakeBackend struct {
	mu        sync.Mutex
	objects   map[string]string
	downloads int
	uploads   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{objects: make(map[string]string)}
}

func (f *fakeBackend) addBundleObjects(pair string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range requiredBundleFiles {
		f.objects[pair+"/"+name] = "content-of-" + name
	}
}

func (f *fakeBackend) UploadFile(ctx context.Context, bucket, localPath, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, key)
	f.objects[key] = localPath
	return nil
}

func (f *fakeBackend) UploadDirectory(ctx context.Context, bucket, localDir, prefix string) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := f.UploadFile(ctx, bucket, filepath.Join(localDir, e.Name()), prefix+e.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) DownloadFile(ctx context.Context, bucket, key, localPath string) error {
	f.mu.Lock()
	content, ok := f.objects[key]
	f.mu.Unlock()
	if !ok {
		return storage.ErrNotFound
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(localPath, []byte(content), 0o644)
}

func (f *fakeBackend) DownloadDirectory(ctx context.Context, bucket, prefix, localDir string) error {
	f.mu.Lock()
	f.downloads++
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	f.mu.Unlock()
	if len(keys) == 0 {
		return storage.ErrNotFound
	}
	for _, k := range keys {
		dest := filepath.Join(localDir, filepath.FromSlash(strings.TrimPrefix(k, prefix)))
		if err := f.DownloadFile(ctx, bucket, k, dest); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) ListObjects(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.ObjectInfo
	for k, v := range f.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	if len(out) == 0 {
		return nil, storage.ErrNotFound
	}
	return out, nil
}

// writeBundle creates a complete artifact bundle in dir. With except set,
// those files are omitted to simulate a partial bundle.
func writeBundle(except []string, dir string) {
	skip := make(map[string]bool, len(except))
	for _, name := range except {
		skip[name] = true
	}
	_ = os.MkdirAll(dir, 0o755)
	for _, name := range requiredBundleFiles {
		if skip[name] {
			continue
		}
		content := "weights"
		if name == "config.json" {
			content = `{"model_type":"marian","d_model":512}`
		}
		_ = os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	}
}

var testPairs = []string{"en-es", "en-fr", "en-de", "fr-en", "es-en", "de-en"}

func testMappings() map[string]string {
	m := make(map[string]string, len(testPairs))
	for _, p := range testPairs {
		m[p] = "Helsinki-NLP/opus-mt-" + p
	}
	return m
}

type testEnv struct {
	mgr       *Manager
	runtime   *fakeRuntime
	converter *fakeConverter
	backend   *fakeBackend
	baseDir   string
}

// newTestManager builds a manager over fakes with a temp bundle dir.
func newTestManager(t *testing.T, mode types.StorageMode, mutate func(*ManagerConfig)) *testEnv {
	t.Helper()
	env := &testEnv{
		runtime:   &fakeRuntime{},
		converter: &fakeConverter{},
		backend:   newFakeBackend(),
		baseDir:   t.TempDir(),
	}
	cfg := ManagerConfig{
		Pairs:       testPairs,
		Mappings:    testMappings(),
		StorageMode: mode,
		BaseDir:     env.baseDir,
		Backend:     env.backend,
		Converter:   env.converter,
		Runtime:     env.runtime,
		Logger:      zerolog.Nop(),
	}
	if mode == types.StorageS3 {
		cfg.Bucket = "test-bucket"
	}
	if mutate != nil {
		mutate(&cfg)
	}
	mgr, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	env.mgr = mgr
	return env
}
