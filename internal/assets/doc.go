// Package assets provides the stylesheets used when a book table is wrapped
// in a standalone page (--document, preview server).
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
