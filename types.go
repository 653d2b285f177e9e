package booklist

import (
	"fmt"
	"io"
	"log/slog"
)

// Column names recognized by the renderer.
const (
	ColumnTitle       = "Book Title"
	ColumnAuthor      = "Author"
	ColumnThemes      = "Key themes"
	ColumnDescription = "Description"
	ColumnISBN        = "ISBN"
	ColumnTargetAge   = "Target Age"
)

// ExcludedColumns never appear in the rendered table.
var ExcludedColumns = []string{"Top 10", "For therapists", "Genre", "Amazon Price"}

// ISBNSearchURL is the lookup base for ISBN links.
const ISBNSearchURL = "https://isbnsearch.org/isbn/"

// LegacyRowIDIndex is the fixed row position the original converter read
// its row identifiers from.
const LegacyRowIDIndex = 7

// Catalog is a parsed book list: one header row and data rows of equal width.
type Catalog struct {
	Header []string
	Rows   [][]string
}

// Result holds the rendered table and a summary of what was rendered.
type Result struct {
	HTML    string   // <table> fragment
	Rows    int      // data rows rendered
	Columns []string // header cells emitted, in order
	Dropped []string // columns present in the header but never rendered as cells
}

// RowIDStrategy decides where each <tr> takes its id attribute from.
type RowIDStrategy struct {
	position int // -1 means look up the ISBN column by name
}

// RowIDFromISBN resolves the column named "ISBN" once per header. Rows with
// no ISBN column or an empty ISBN get a synthetic "row-<n>" identifier.
func RowIDFromISBN() RowIDStrategy {
	return RowIDStrategy{position: -1}
}

// RowIDAtIndex reads the identifier from a fixed cell position regardless of
// the header. RowIDAtIndex(LegacyRowIDIndex) matches the original converter.
// Panics if i < 0 (programmer error).
func RowIDAtIndex(i int) RowIDStrategy {
	if i < 0 {
		panic("booklist: RowIDAtIndex index must not be negative")
	}
	return RowIDStrategy{position: i}
}

// String implements fmt.Stringer.
func (s RowIDStrategy) String() string {
	if s.position < 0 {
		return "isbn"
	}
	return fmt.Sprintf("position(%d)", s.position)
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	rowID       RowIDStrategy
	markdown    bool
	warnUnknown bool
	logger      *slog.Logger
}

// WithRowID sets how row identifiers are chosen.
func WithRowID(s RowIDStrategy) Option {
	return func(r *Renderer) {
		r.cfg.rowID = s
	}
}

// WithMarkdownDescriptions renders Description cells as inline Markdown.
func WithMarkdownDescriptions(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.markdown = enabled
	}
}

// WithUnknownColumnWarnings logs a warning for each header column that is
// neither recognized nor excluded. Enabled by default.
func WithUnknownColumnWarnings(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.warnUnknown = enabled
	}
}

// WithLogger sets the logger used for diagnostics.
// A nil logger discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		r.cfg.logger = l
	}
}
