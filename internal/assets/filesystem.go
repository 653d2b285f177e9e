package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads styles from {basePath}/styles/{name}.css.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare resolved paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadStyle loads a style from the filesystem.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	filePath := filepath.Join(f.basePath, "styles", name+".css")
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// verifyPathContainment ensures filePath, after symlink resolution, is
// inside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; the read fails later.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ StyleLoader = (*FilesystemLoader)(nil)
