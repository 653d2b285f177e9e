package assets

import "errors"

// Resolver tries a custom directory first and falls back to the built-in
// styles when the custom directory does not have the requested style.
type Resolver struct {
	custom   StyleLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewResolver creates a Resolver. An empty customBasePath uses built-in
// styles only.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadStyle loads a style, preferring the custom directory.
// Only "not found" falls back; validation and I/O errors are returned as is.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	css, err := r.custom.LoadStyle(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// Available lists the built-in style names (for hints).
func (r *Resolver) Available() []string {
	return r.embedded.Styles()
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*Resolver)(nil)
