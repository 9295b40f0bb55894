package fsutil

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Canonicalizer turns a user supplied path into the stable key used for history tracking.
type Canonicalizer func(path string) (string, error)

// Canonicalize resolves path to its absolute, symlink-free form.
// The path must exist.
func Canonicalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks for %s: %w", absPath, err)
	}

	return resolved, nil
}

// CleanAbs makes path absolute and lexically clean without touching the filesystem.
// It is the canonicalizer for filesystems without symlinks, such as afero.MemMapFs.
func CleanAbs(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}

	return absPath, nil
}

// Exists reports whether path refers to an existing filesystem entry.
// Errors other than "not exist" are treated as absence.
func Exists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}

	exists, err := afero.Exists(fs, path)

	return err == nil && exists
}
