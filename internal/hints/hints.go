// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-booklist/internal/fileutil"
)

// Getwd reports the working directory used to explain relative paths.
// Replaced in tests.
var Getwd = os.Getwd

// ForFileNotFound returns hints for a catalog path that does not exist.
// Suggests the same name with a known extension when one is on disk,
// otherwise explains where relative paths are resolved from.
func ForFileNotFound(path string) string {
	var hints []string

	if filepath.Ext(path) == "" {
		for _, ext := range []string{".csv", ".xlsx"} {
			if fileutil.FileExists(path + ext) {
				hints = append(hints, "did you mean "+path+ext+"?")
				break
			}
		}
	}

	if len(hints) == 0 && !filepath.IsAbs(path) {
		if wd, err := Getwd(); err == nil {
			hints = append(hints, "relative paths are resolved from "+wd)
		}
	}

	return formatHints(hints)
}

// ForMalformedRow returns a hint for rows whose field count differs from the header.
func ForMalformedRow() string {
	return format("quote values that contain commas; every row needs one value per header column")
}

// ForParseCatalog returns a hint for CSV syntax and encoding errors.
func ForParseCatalog() string {
	return format(`save the file as UTF-8 CSV; wrap values containing quotes in "..." and double the inner quotes`)
}

// ForUnsupportedFormat returns a hint for spreadsheet formats that cannot be read.
func ForUnsupportedFormat() string {
	return format("export the sheet as .csv or .xlsx")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-booklist/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-booklist") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForListen returns a hint for preview server bind failures.
func ForListen(addr string) string {
	return format("is another process using " + addr + "? try --serve 127.0.0.1:0 for a free port")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
