package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveConfigDefaultsAndMappingMerge(t *testing.T) {
	dir := t.TempDir()
	mappingsPath := filepath.Join(dir, "mappings.json")
	if err := os.WriteFile(mappingsPath, []byte(`{"en-es":"hub/es-file","en-fr":"hub/fr-file"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile := filepath.Join(dir, "config.yaml")
	body := "mappings_file: " + mappingsPath + "\nmodel_mappings:\n  en-fr: hub/fr-inline\n"
	if err := os.WriteFile(cfgFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	origPath, origLevel := cfgPath, logLevel
	cfgPath, logLevel = cfgFile, ""
	defer func() { cfgPath, logLevel = origPath, origLevel }()

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Fatalf("default addr %q", cfg.Addr)
	}
	if cfg.StorageMode != "local" {
		t.Fatalf("default storage mode %q", cfg.StorageMode)
	}
	if cfg.RuntimeURL == "" {
		t.Fatalf("runtime url default missing")
	}
	// Inline mapping wins over the file entry for the same pair.
	if cfg.ModelMappings["en-fr"] != "hub/fr-inline" {
		t.Fatalf("inline mapping not preferred: %v", cfg.ModelMappings)
	}
	if cfg.ModelMappings["en-es"] != "hub/es-file" {
		t.Fatalf("file mapping lost: %v", cfg.ModelMappings)
	}
	// Pairs derived from mappings when unset, sorted.
	if want := []string{"en-es", "en-fr"}; !reflect.DeepEqual(cfg.Pairs, want) {
		t.Fatalf("pairs = %v, want %v", cfg.Pairs, want)
	}
}

func TestResolveConfigMissingFile(t *testing.T) {
	origPath := cfgPath
	cfgPath = filepath.Join(t.TempDir(), "absent.yaml")
	defer func() { cfgPath = origPath }()

	if _, err := resolveConfig(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
