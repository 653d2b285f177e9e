package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the name contains path separators,
	// dots, or is empty.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading a style file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
