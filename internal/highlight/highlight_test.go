package highlight

import (
	"bytes"
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	src := "<table>\n    <tbody>\n        <tr id='1'>\n        </tr>\n    </tbody>\n</table>"

	tests := []struct {
		name  string
		style string
	}{
		{"default style", ""},
		{"named style", "github"},
		{"unknown style falls back", "no-such-style"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := HTML(&buf, src, tt.style); err != nil {
				t.Fatalf("HTML() error = %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, "\x1b[") {
				t.Errorf("expected ANSI escapes in %q", out)
			}
			if !strings.Contains(out, "table") {
				t.Errorf("expected source text preserved, got %q", out)
			}
		})
	}
}
