package booklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readSpreadsheet reads the first sheet of an Excel workbook. The first row
// with any non-blank cell is the header. Rows are padded to the header width
// because the workbook format drops trailing empty cells.
func readSpreadsheet(ctx context.Context, path string) (*Catalog, error) {
	file, err := openCatalog(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrReadCatalog, sheet, err)
	}

	headerIdx := firstNonBlankRow(rows)
	if headerIdx == -1 {
		return nil, ErrEmptyCatalog
	}

	header := rows[headerIdx]
	catalog := &Catalog{Header: header}

	for i := headerIdx + 1; i < len(rows); i++ {
		if (i-headerIdx)%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrMalformedRow, i+1, len(row), len(header))
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		catalog.Rows = append(catalog.Rows, row)
	}

	return catalog, nil
}

// firstNonBlankRow returns the index of the first row with content, or -1.
func firstNonBlankRow(rows [][]string) int {
	for i, row := range rows {
		if !isBlankRow(row) {
			return i
		}
	}
	return -1
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
