package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"translatord/pkg/types"
)

func TestEnsureLocalIdempotent(t *testing.T) {
	env := newTestManager(t, types.StorageLocal, nil)
	ctx := context.Background()

	if err := env.mgr.EnsureLocal(ctx, "en-es", false); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := env.mgr.EnsureLocal(ctx, "en-es", false); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if got := env.converter.callCount(); got != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", got)
	}
}

func TestEnsureLocalOverwriteRefetches(t *testing.T) {
	env := newTestManager(t, types.StorageLocal, nil)
	ctx := context.Background()

	if err := env.mgr.EnsureLocal(ctx, "en-es", false); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := env.mgr.EnsureLocal(ctx, "en-es", true); err != nil {
		t.Fatalf("ensure overwrite: %v", err)
	}
	if got := env.converter.callCount(); got != 2 {
		t.Fatalf("expected 2 fetches with overwrite, got %d", got)
	}
}

func TestEnsureLocalUnknownPair(t *testing.T) {
	env := newTestManager(t, types.StorageLocal, nil)
	err := env.mgr.EnsureLocal(context.Background(), "xx-yy", false)
	if !IsUnknownPair(err) {
		t.Fatalf("expected unknown-pair error, got %v", err)
	}
}

func TestEnsureLocalConversionFailureLeavesBundleAbsent(t *testing.T) {
	env := newTestManager(t, types.StorageLocal, nil)
	env.converter.failFor = map[string]bool{"Helsinki-NLP/opus-mt-en-es": true}

	err := env.mgr.EnsureLocal(context.Background(), "en-es", false)
	if !IsFetchFailure(err) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(env.baseDir, "en-es")); !os.IsNotExist(statErr) {
		t.Fatalf("expected bundle dir to be absent after failed conversion")
	}
}

func TestEnsureLocalRemoteDownload(t *testing.T) {
	env := newTestManager(t, types.StorageS3, nil)
	env.backend.addBundleObjects("en-fr")
	ctx := context.Background()

	if err := env.mgr.EnsureLocal(ctx, "en-fr", false); err != nil {
		t.Fatalf("remote ensure: %v", err)
	}
	for _, name := range requiredBundleFiles {
		if _, err := os.Stat(filepath.Join(env.baseDir, "en-fr", name)); err != nil {
			t.Fatalf("expected %s to be mirrored locally: %v", name, err)
		}
	}
	// Second call is a no-op.
	if err := env.mgr.EnsureLocal(ctx, "en-fr", false); err != nil {
		t.Fatalf("second remote ensure: %v", err)
	}
	if env.backend.downloads != 1 {
		t.Fatalf("expected 1 download, got %d", env.backend.downloads)
	}
}

func TestEnsureLocalRemoteMissingPrefix(t *testing.T) {
	env := newTestManager(t, types.StorageS3, nil)
	err := env.mgr.EnsureLocal(context.Background(), "en-fr", false)
	if !IsArtifactMissing(err) {
		t.Fatalf("expected artifact-missing for absent remote prefix, got %v", err)
	}
}
