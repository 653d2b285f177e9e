// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned when a write target is empty.
var ErrEmptyPath = errors.New("path cannot be empty")

// FilePermissions is the mode of files written by WriteFileAtomic.
const FilePermissions = 0o644

// WriteFileAtomic writes content to a temporary file in the target's
// directory and renames it over path, so readers never see a partial table.
func WriteFileAtomic(path, content string) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".booklist-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, FilePermissions); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "booklist" -> false (name)
//   - "./booklist.yaml" -> true (relative path)
//   - "/etc/booklist.yaml" -> true (absolute)
//   - "C:\config\booklist.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
