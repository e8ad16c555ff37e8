package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // windows

	if got := ExpandHome("/tmp"); got != "/tmp" {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := ExpandHome(""); got != "" {
		t.Fatalf("empty path changed: %q", got)
	}
	if got := ExpandHome("~"); got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
	if got, want := ExpandHome("~/models"), filepath.Join(home, "models"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	if !PathExists(dir) {
		t.Fatalf("existing dir reported absent")
	}
	if PathExists(filepath.Join(dir, "nope")) {
		t.Fatalf("absent path reported present")
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !PathExists(file) {
		t.Fatalf("existing file reported absent")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !PathExists(dir) {
		t.Fatalf("dir not created")
	}
	// Idempotent.
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
}
