package booklist

import (
	"fmt"
	"html"
)

// DefaultDocumentTitle is used when WrapDocument receives an empty title.
const DefaultDocumentTitle = "Book List"

// documentTemplate wraps a table fragment in a complete HTML5 document.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
%s</head>
<body>
%s
</body>
</html>
`

// WrapDocument returns a standalone page around a table fragment. css is
// inlined in a <style> element when non-empty. The title is escaped; the
// fragment is inserted verbatim.
func WrapDocument(fragment, css, title string) string {
	if title == "" {
		title = DefaultDocumentTitle
	}
	style := ""
	if css != "" {
		style = "<style>\n" + css + "\n</style>\n"
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), style, fragment)
}
