// Package yamlutil keeps the YAML library behind two functions so config
// code never imports it directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded documents at 1 MiB.
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeStrict unmarshals data into v and rejects fields v does not declare.
// Fields absent from data keep whatever value v already holds, so callers
// can decode on top of defaults.
func DecodeStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrEmptyInput
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode marshals v to YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
