package booklist

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Compile-time interface implementation check.
var _ markdownConverter = (*goldmarkConverter)(nil)

// Renderer turns a book catalog into an HTML <table> fragment.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	cfg      rendererConfig
	markdown markdownConverter
}

// NewRenderer creates a Renderer with default configuration: row identifiers
// from the ISBN column, raw-text descriptions, unknown-column warnings on.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		cfg: rendererConfig{
			rowID:       RowIDFromISBN(),
			warnUnknown: true,
			logger:      slog.Default(),
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.markdown && r.markdown == nil {
		r.markdown = newGoldmarkConverter()
	}

	return r
}

// Render reads the catalog at path and renders it.
func (r *Renderer) Render(ctx context.Context, path string) (*Result, error) {
	catalog, err := ReadCatalog(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.RenderCatalog(ctx, catalog)
}

// RenderCatalog renders a parsed catalog. Nothing is returned on error: a
// malformed row anywhere fails the whole table.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) RenderCatalog(ctx context.Context, c *Catalog) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if c == nil || len(c.Header) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := c.validateRows(); err != nil {
		return nil, err
	}

	l := newLayout(c.Header)
	if err := r.checkRowID(l); err != nil {
		return nil, err
	}
	if r.cfg.warnUnknown {
		for _, name := range l.unknown() {
			r.cfg.logger.Warn("unrecognized column has no cell rule; header kept, cells dropped",
				"column", name)
		}
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	b.WriteString(indentSection + "<thead>\n" + indentRow + "<tr>\n")

	var columns []string
	for _, name := range c.Header {
		if IsExcluded(name) {
			continue
		}
		writeHeaderCell(&b, name)
		columns = append(columns, name)
	}

	b.WriteString(indentRow + "</tr>\n" + indentSection + "</thead>\n" + indentSection + "<tbody>\n")

	for i, row := range c.Rows {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r.writeRow(&b, l, row, i+1)
	}

	b.WriteString(indentSection + "</tbody>\n</table>")

	return &Result{
		HTML:    b.String(),
		Rows:    len(c.Rows),
		Columns: columns,
		Dropped: l.dropped(),
	}, nil
}

// RenderHeaderCell returns the <th> line for a column, or "" if the column
// is excluded.
func (r *Renderer) RenderHeaderCell(name string) string {
	var b strings.Builder
	writeHeaderCell(&b, name)
	return b.String()
}

// RenderDataCell returns the <td> line for one cell, dispatched by column
// name. Excluded and unrecognized columns render as "". The last argument is
// the full data row the cell belongs to; no cell rule reads it.
func (r *Renderer) RenderDataCell(name, value string, _ []string) string {
	var b strings.Builder
	kind := kindOf(name)
	writeDataCell(&b, kind, r.cellValue(kind, value))
	return b.String()
}

// RenderRow renders one <tr>. rowNum is the 1-based data row number, used
// only for synthetic identifiers.
func (r *Renderer) RenderRow(row, header []string, rowNum int) (string, error) {
	if len(row) != len(header) {
		return "", fmt.Errorf("%w: row %d has %d fields, header has %d",
			ErrMalformedRow, rowNum, len(row), len(header))
	}
	l := newLayout(header)
	if err := r.checkRowID(l); err != nil {
		return "", err
	}
	var b strings.Builder
	r.writeRow(&b, l, row, rowNum)
	return b.String(), nil
}

// writeRow appends one <tr> with a cell per column in header order.
// The row width has already been validated against the layout.
func (r *Renderer) writeRow(b *strings.Builder, l *layout, row []string, rowNum int) {
	b.WriteString(indentRow + "<tr id='" + r.rowID(l, row, rowNum) + "'>\n")
	for i, kind := range l.kinds {
		writeDataCell(b, kind, r.cellValue(kind, row[i]))
	}
	b.WriteString(indentRow + "</tr>\n")
}

// cellValue applies Markdown conversion to descriptions when enabled.
// Conversion failures fall back to the raw value.
func (r *Renderer) cellValue(kind columnKind, value string) string {
	if kind != kindDescription || r.markdown == nil {
		return value
	}
	out, err := r.markdown.Inline(value)
	if err != nil {
		r.cfg.logger.Warn("description kept as plain text", "error", err)
		return value
	}
	return out
}

// rowID picks the identifier for a row according to the configured strategy.
func (r *Renderer) rowID(l *layout, row []string, rowNum int) string {
	if pos := r.cfg.rowID.position; pos >= 0 {
		return row[pos]
	}
	if l.isbnIdx >= 0 {
		if isbn := strings.TrimSpace(row[l.isbnIdx]); isbn != "" {
			return isbn
		}
	}
	return "row-" + strconv.Itoa(rowNum)
}

// checkRowID fails fast when a positional strategy points past the header.
func (r *Renderer) checkRowID(l *layout) error {
	pos := r.cfg.rowID.position
	if pos >= len(l.header) {
		return fmt.Errorf("%w: %d (header has %d columns)", ErrInvalidRowIDIndex, pos, len(l.header))
	}
	return nil
}
