package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// EmbeddedLoader loads styles compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in style by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// Styles returns the names of the built-in styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ StyleLoader = (*EmbeddedLoader)(nil)
