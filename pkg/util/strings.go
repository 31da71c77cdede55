// Package util provides shared utility functions for astroctl.
package util

import (
	"path/filepath"
	"strings"
)

// MaxLogBodySize is the default maximum body size for logging (10KB).
const MaxLogBodySize = 10 * 1024

// TruncateBody truncates a string to maxSize bytes, appending "...(truncated)" if truncated.
// If maxSize <= 0, uses MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}

// SafeFilePath cleans a user-supplied relative path and reports whether it is
// safe to use. Paths that are empty, absolute, contain backslashes, or still
// escape upward after cleaning are rejected.
func SafeFilePath(path string) (string, bool) {
	cleaned, ok := cleanPath(path)
	if !ok {
		return "", false
	}
	if filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SafeFilePathAllowAbsolute is SafeFilePath for call sites where absolute
// paths are acceptable, such as output files named on the command line.
// Relative paths that escape upward are still rejected.
func SafeFilePathAllowAbsolute(path string) (string, bool) {
	return cleanPath(path)
}

func cleanPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if strings.ContainsRune(path, '\\') {
		return "", false
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}
