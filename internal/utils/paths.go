package utils

import "path/filepath"

// ResolvePath resolves path relative to baseDir. Absolute paths are
// returned unchanged.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
