package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every mode.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds flags controlling where and how the table is written.
type outputFlags struct {
	path     string
	document bool
	title    string
	style    string
	color    bool
}

// renderFlags holds table rendering flags.
type renderFlags struct {
	legacyRowID bool
	markdown    bool
}

// logFlags holds diagnostic logging flags.
type logFlags struct {
	level  string
	format string
}

// cliFlags holds every flag of the booklist command.
type cliFlags struct {
	common      commonFlags
	output      outputFlags
	render      renderFlags
	log         logFlags
	assetPath   string
	serve       string
	printConfig bool
	version     bool
	help        bool

	set *flag.FlagSet // reports which flags were given explicitly
}

// changed reports whether a flag was given on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show render summary and runtime details")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "write to file instead of stdout")
	fs.BoolVar(&f.document, "document", false, "wrap the table in a full HTML page")
	fs.StringVar(&f.title, "title", "", "page title in document mode")
	fs.StringVar(&f.style, "style", "", "stylesheet name or path for document mode")
	fs.BoolVar(&f.color, "color", false, "syntax-highlight HTML written to the terminal")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.legacyRowID, "legacy-row-id", false, "take row ids from the 8th cell of each row")
	fs.BoolVar(&f.markdown, "markdown", false, "render descriptions as inline Markdown")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: text, json")
}

// parseFlags parses args (without the program name) and returns the flags
// and the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("booklist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addRenderFlags(fs, &f.render)
	addLogFlags(fs, &f.log)
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/")
	fs.StringVar(&f.serve, "serve", "", "serve a live preview on this address")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.set = fs
	return f, fs.Args(), nil
}
