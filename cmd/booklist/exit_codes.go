package main

import (
	"errors"
	"os"

	booklist "github.com/alnah/go-booklist"
	"github.com/alnah/go-booklist/internal/assets"
	"github.com/alnah/go-booklist/internal/config"
	"github.com/alnah/go-booklist/internal/server"
)

// Exit codes for the booklist CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Table rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Wrong argument count, invalid flags or config
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitData    = 4 // Catalog content cannot be rendered
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Data errors (exit 4)
	if errors.Is(err, booklist.ErrMalformedRow) ||
		errors.Is(err, booklist.ErrParseCatalog) ||
		errors.Is(err, booklist.ErrEmptyCatalog) ||
		errors.Is(err, booklist.ErrUnsupportedFormat) ||
		errors.Is(err, booklist.ErrInvalidRowIDIndex) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, booklist.ErrFileNotFound) ||
		errors.Is(err, booklist.ErrReadCatalog) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrReadStyle) ||
		errors.Is(err, server.ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
