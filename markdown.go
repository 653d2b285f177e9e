package booklist

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownConverter renders short Markdown snippets (descriptions) to HTML.
type markdownConverter interface {
	Inline(content string) (string, error)
}

// goldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type goldmarkConverter struct {
	md goldmark.Markdown
}

// newGoldmarkConverter creates a goldmarkConverter with GFM extensions and
// class-based syntax highlighting for code spans pasted into descriptions.
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &goldmarkConverter{md: md}
}

// Inline converts content and unwraps a lone paragraph so the result fits
// inside a <span>. Multi-block content is returned unchanged.
func (c *goldmarkConverter) Inline(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}

	out := strings.TrimSpace(buf.String())
	inner, ok := strings.CutPrefix(out, "<p>")
	if ok {
		inner, ok = strings.CutSuffix(inner, "</p>")
	}
	if ok && !strings.Contains(inner, "<p>") {
		return inner, nil
	}
	return out, nil
}
