package booklist

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrFileNotFound       = errors.New("catalog file not found")
	ErrReadCatalog        = errors.New("failed to read catalog")
	ErrEmptyCatalog       = errors.New("catalog has no header row")
	ErrUnsupportedFormat  = errors.New("unsupported catalog format")
	ErrMarkdownConversion = errors.New("markdown conversion failed")

	// Content errors.
	ErrParseCatalog      = errors.New("catalog is not valid CSV")
	ErrMalformedRow      = errors.New("malformed row")
	ErrInvalidRowIDIndex = errors.New("invalid row identifier index")
)

// LegacyMessage converts a render failure into the single line the original
// converter printed in place of the table. Callers that only need a printable
// string (the CLI, shell pipelines) use this; everything else should inspect
// err with errors.Is.
func LegacyMessage(path string, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrFileNotFound) {
		return fmt.Sprintf("Error: File not found at %s", path)
	}
	return fmt.Sprintf("An error occurred: %v", err)
}
