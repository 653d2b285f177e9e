package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style name is safe to use as a file name.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
