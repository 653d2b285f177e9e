package main

import (
	"fmt"
	"io"
)

// printUsage prints the one-line usage message for a wrong argument count.
func printUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s <csv_file_path>\n", program)
}

// printHelp prints the full help text.
func printHelp(w io.Writer, program string) {
	printUsage(w, program)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a book catalog (CSV or .xlsx) as an HTML table.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to file instead of stdout")
	fmt.Fprintln(w, "      --document            Wrap the table in a full HTML page")
	fmt.Fprintln(w, "      --title <s>           Page title (default \"Book List\")")
	fmt.Fprintln(w, "      --style <name|path>   Stylesheet for --document and --serve (default \"default\")")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory containing styles/<name>.css")
	fmt.Fprintln(w, "      --color               Syntax-highlight HTML on the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --legacy-row-id       Take row ids from the 8th cell instead of the ISBN column")
	fmt.Fprintln(w, "      --markdown            Render descriptions as inline Markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --serve <addr>        Serve a live preview (e.g. 127.0.0.1:8080)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error (default warn)")
	fmt.Fprintln(w, "      --log-format <s>      text, json (default text)")
	fmt.Fprintln(w, "  -q, --quiet               Do not warn about unrecognized columns")
	fmt.Fprintln(w, "  -v, --verbose             Log a render summary")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BOOKLIST_CONFIG, BOOKLIST_OUTPUT, BOOKLIST_TITLE, BOOKLIST_STYLE,")
	fmt.Fprintln(w, "  BOOKLIST_ASSET_PATH, BOOKLIST_ROW_ID, BOOKLIST_DOCUMENT, BOOKLIST_MARKDOWN,")
	fmt.Fprintln(w, "  BOOKLIST_SERVE_ADDR, BOOKLIST_LOG_LEVEL, BOOKLIST_LOG_FORMAT")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 unexpected error, 2 usage or config,")
	fmt.Fprintln(w, "  3 file not found or unreadable, 4 catalog cannot be rendered")
}
