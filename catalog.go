package booklist

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// contextCheckInterval is how often (in rows) long loops poll for cancellation.
const contextCheckInterval = 100

// utf8BOM is stripped from the start of CSV input (spreadsheet exports add it).
var utf8BOM = []byte("\xef\xbb\xbf")

// ReadCatalog reads the book list at path. Files ending in .xlsx or .xlsm are
// read as spreadsheets (first sheet); everything else is parsed as CSV.
// The file is fully read and closed before ReadCatalog returns.
func ReadCatalog(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readSpreadsheet(ctx, path)
	case ".xls", ".ods", ".numbers":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := openCatalog(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(ctx, f)
}

// ParseCSV parses comma-delimited, double-quote quoted CSV whose first
// record is the header.
func ParseCSV(r io.Reader) (*Catalog, error) {
	return parseCSV(context.Background(), r)
}

func parseCSV(ctx context.Context, r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if line, ok := invalidUTF8Line(data); ok {
		return nil, fmt.Errorf("%w: line %d: invalid UTF-8", ErrParseCatalog, line)
	}

	// Quoting is strict: a bare quote in an unquoted field, or text after a
	// closing quote, is a syntax error.
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = 0 // width fixed by the header

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, csvError(err, nil, 0)
	}

	catalog := &Catalog{Header: header}
	for n := 0; ; n++ {
		if n%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err, record, len(header))
		}
		catalog.Rows = append(catalog.Rows, record)
	}

	return catalog, nil
}

// csvError maps an encoding/csv failure to a catalog sentinel. Width
// mismatches are malformed rows; other parse errors are syntax errors.
func csvError(err error, record []string, width int) error {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}
	if errors.Is(pe.Err, csv.ErrFieldCount) {
		return fmt.Errorf("%w: line %d has %d fields, header has %d",
			ErrMalformedRow, pe.StartLine, len(record), width)
	}
	return fmt.Errorf("%w: line %d, column %d: %v", ErrParseCatalog, pe.Line, pe.Column, pe.Err)
}

// invalidUTF8Line reports the 1-based line holding the first byte sequence
// that is not valid UTF-8.
func invalidUTF8Line(data []byte) (int, bool) {
	if utf8.Valid(data) {
		return 0, false
	}
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return line, true
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line, true
}

// openCatalog opens path for reading, mapping a missing file to ErrFileNotFound.
func openCatalog(path string) (*os.File, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}
	return f, nil
}

// validateRows checks that every row matches the header width.
// Row numbers in errors are 1-based and count the header as line 1.
func (c *Catalog) validateRows() error {
	for i, row := range c.Rows {
		if len(row) != len(c.Header) {
			return fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrMalformedRow, i+2, len(row), len(c.Header))
		}
	}
	return nil
}
