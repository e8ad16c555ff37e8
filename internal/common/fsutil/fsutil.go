// Package fsutil holds small filesystem helpers shared by the manager,
// storage and CLI layers.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the current user's home directory.
// Paths that cannot be expanded are returned unchanged so callers can still
// surface a meaningful open/stat error later.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	// handles paths like ~/models
	return filepath.Join(home, strings.TrimPrefix(path, "~/"))
}

// PathExists reports whether the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
