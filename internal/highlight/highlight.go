// Package highlight colors rendered HTML for terminal output.
package highlight

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// HTML writes src to w with ANSI 256-color syntax highlighting.
func HTML(w io.Writer, src, style string) error {
	if style == "" {
		style = DefaultStyle
	}
	if err := quick.Highlight(w, src, "html", "terminal256", style); err != nil {
		return fmt.Errorf("highlighting output: %w", err)
	}
	return nil
}
