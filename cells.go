package booklist

import "strings"

// Indentation levels of the emitted markup.
const (
	indentSection = "    "
	indentRow     = "        "
	indentCell    = "            "
	indentItem    = "                "
)

// writeHeaderCell appends the <th> for a column, or nothing if excluded.
func writeHeaderCell(b *strings.Builder, name string) {
	switch kindOf(name) {
	case kindExcluded:
		return
	case kindTitle:
		b.WriteString(indentCell + "<th class='mobile-title'>Title</th>\n")
	case kindISBN:
		b.WriteString(indentCell + "<th class='mobile-isbn'>ISBN</th>\n")
	default:
		b.WriteString(indentCell + "<th class='desktop-only'>" + name + "</th>\n")
	}
}

// writeDataCell appends the <td> for one cell. Description is passed in
// already converted so the caller decides between raw text and Markdown.
func writeDataCell(b *strings.Builder, kind columnKind, value string) {
	switch kind {
	case kindTitle:
		b.WriteString(indentCell + "<td><span class='book-title mobile-title'>" + value + "</span></td>\n")
	case kindAuthor:
		b.WriteString(indentCell + "<td class='desktop-only'>" + value + "</td>\n")
	case kindThemes:
		writeList(b, splitThemes(value))
	case kindDescription:
		b.WriteString(indentCell + "<td class='desktop-only'><span class='description'>" + value + "</span></td>\n")
	case kindISBN:
		if value == "" {
			b.WriteString(indentCell + "<td></td>\n")
			return
		}
		b.WriteString(indentCell + "<td><a href='" + ISBNSearchURL + value +
			"' target='_blank' class='mobile-isbn'>" + value + "</a></td>\n")
	case kindTargetAge:
		if value == "" {
			b.WriteString(indentCell + "<td></td>\n")
			return
		}
		writeList(b, []string{strings.TrimSpace(value)})
	}
	// kindExcluded and kindUnknown emit nothing.
}

// writeList appends a desktop-only cell holding a theme-list <ul>.
func writeList(b *strings.Builder, items []string) {
	b.WriteString(indentCell + "<td class='desktop-only'><ul class='theme-list'>\n")
	for _, item := range items {
		b.WriteString(indentItem + "<li>" + item + "</li>\n")
	}
	b.WriteString(indentCell + "</ul></td>\n")
}

// splitThemes splits a comma-separated theme list and trims each segment.
// Empty segments are kept so the item count always matches the comma count.
func splitThemes(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
