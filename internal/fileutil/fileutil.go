// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// ReadTextFile reads a file and returns its content as a string. Errors
// are the os package's own kinds (wrapped with context), since callers
// already understand that taxonomy.
func ReadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is caller-provided by contract
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(content), nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather
// than a name. A string containing path separators (/, \) is treated as a
// path.
//
// Examples:
//   - "docs" -> false (name)
//   - "./pipeline.yaml" -> true (relative path)
//   - "/etc/mdfront/pipeline.yaml" -> true (absolute)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
