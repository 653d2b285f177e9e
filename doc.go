// Package booklist renders a book catalog (CSV or Excel workbook) as an HTML
// <table> fragment with responsive CSS classes.
//
// # Quick Start
//
// Create a renderer and render a file:
//
//	r := booklist.NewRenderer()
//	result, err := r.Render(ctx, "booklist.csv")
//	if err != nil {
//	    fmt.Println(booklist.LegacyMessage("booklist.csv", err))
//	    os.Exit(1)
//	}
//	fmt.Println(result.HTML)
//
// # Columns
//
// Cells are rendered by column name, never by position:
//
//   - "Book Title": <span class='book-title mobile-title'>
//   - "Author": desktop-only cell, raw text
//   - "Key themes": comma-separated, one <li> per theme in a theme-list
//   - "Description": <span class='description'> in a desktop-only cell
//   - "ISBN": link to isbnsearch.org, or an empty cell
//   - "Target Age": single-item theme-list, or an empty cell
//
// "Top 10", "For therapists", "Genre" and "Amazon Price" are never rendered.
// Any other column keeps a desktop-only header but produces no cells; the
// renderer logs a warning for it unless WithUnknownColumnWarnings(false).
//
// Cell values are inserted verbatim. Nothing is HTML-escaped.
//
// # Row Identifiers
//
// Each <tr> carries an id. By default it is the row's ISBN, looked up by
// column name, falling back to "row-<n>". RowIDAtIndex(LegacyRowIDIndex)
// reads a fixed cell position instead, matching older output:
//
//	r := booklist.NewRenderer(booklist.WithRowID(booklist.RowIDAtIndex(booklist.LegacyRowIDIndex)))
//
// Default output therefore differs from the legacy converter, which always
// took the id from the eighth cell. A row whose eighth cell is "1" and whose
// ISBN is 0441013597 gets id='1' there and id='0441013597' here. The
// booklist command restores the legacy ids with --legacy-row-id.
//
// # Errors
//
// Failures are returned as errors wrapping the sentinels in errors.go and
// should be tested with errors.Is. LegacyMessage converts an error into the
// single-line text printed by command-line tools.
//
// # Documents
//
// WrapDocument turns a fragment into a standalone page with an inline
// stylesheet. The cmd/booklist tool uses it for --document and --serve.
package booklist
