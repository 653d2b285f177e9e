package booklist

// columnKind selects the rendering strategy for one header column.
type columnKind int

const (
	kindUnknown columnKind = iota // no cell emitted, header shown desktop-only
	kindExcluded
	kindTitle
	kindAuthor
	kindThemes
	kindDescription
	kindISBN
	kindTargetAge
)

// columnKinds maps recognized header names to their strategy.
var columnKinds = map[string]columnKind{
	ColumnTitle:       kindTitle,
	ColumnAuthor:      kindAuthor,
	ColumnThemes:      kindThemes,
	ColumnDescription: kindDescription,
	ColumnISBN:        kindISBN,
	ColumnTargetAge:   kindTargetAge,
}

var excludedSet = func() map[string]bool {
	m := make(map[string]bool, len(ExcludedColumns))
	for _, name := range ExcludedColumns {
		m[name] = true
	}
	return m
}()

// kindOf classifies a column name. Matching is exact and case-sensitive.
func kindOf(name string) columnKind {
	if excludedSet[name] {
		return kindExcluded
	}
	if k, ok := columnKinds[name]; ok {
		return k
	}
	return kindUnknown
}

// IsExcluded reports whether a column is always suppressed from output.
func IsExcluded(name string) bool {
	return excludedSet[name]
}

// IsRecognized reports whether a column has a cell rendering rule.
func IsRecognized(name string) bool {
	_, ok := columnKinds[name]
	return ok
}

// layout is the per-header strategy table, built once and reused for every row.
type layout struct {
	header  []string
	kinds   []columnKind
	isbnIdx int // -1 when the header has no ISBN column
}

func newLayout(header []string) *layout {
	l := &layout{
		header:  header,
		kinds:   make([]columnKind, len(header)),
		isbnIdx: -1,
	}
	for i, name := range header {
		l.kinds[i] = kindOf(name)
		if l.kinds[i] == kindISBN && l.isbnIdx == -1 {
			l.isbnIdx = i
		}
	}
	return l
}

// unknown returns header columns that are neither recognized nor excluded.
func (l *layout) unknown() []string {
	var names []string
	for i, k := range l.kinds {
		if k == kindUnknown {
			names = append(names, l.header[i])
		}
	}
	return names
}

// dropped returns every header column that produces no data cells.
func (l *layout) dropped() []string {
	var names []string
	for i, k := range l.kinds {
		if k == kindUnknown || k == kindExcluded {
			names = append(names, l.header[i])
		}
	}
	return names
}
