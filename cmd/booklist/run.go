package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	booklist "github.com/alnah/go-booklist"
	"github.com/alnah/go-booklist/internal/assets"
	"github.com/alnah/go-booklist/internal/config"
	"github.com/alnah/go-booklist/internal/fileutil"
	"github.com/alnah/go-booklist/internal/highlight"
	"github.com/alnah/go-booklist/internal/hints"
	"github.com/alnah/go-booklist/internal/logging"
	"github.com/alnah/go-booklist/internal/server"
	"github.com/alnah/go-booklist/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write output")
	ErrReadStyle   = errors.New("failed to read stylesheet")
)

// defaultProgramName is shown in usage when args carries no program name.
const defaultProgramName = "booklist"

// runMain runs the CLI and returns the process exit code.
// args includes the program name, as in os.Args.
func runMain(args []string, env *Environment) int {
	program := defaultProgramName
	if len(args) > 0 {
		if base := filepath.Base(args[0]); args[0] != "" && base != "." {
			program = base
		}
		args = args[1:]
	}

	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printUsage(env.Stdout, program)
		return ExitUsage
	}

	if flags.help {
		printHelp(env.Stdout, program)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "%s %s\n", program, Version)
		return ExitSuccess
	}

	// Checked before any file is touched.
	if !flags.printConfig && len(positional) != 1 {
		printUsage(env.Stdout, program)
		return ExitUsage
	}

	loadDotEnv(env.LoadDotEnv, env.Stderr)
	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	getenv := env.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	envCfg := loadEnvConfig(getenv)

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		reportError(env.Stderr, err, hintContext{configName: configName(flags, envCfg)})
		return exitCodeFor(err)
	}

	if flags.printConfig {
		out, err := yamlutil.Encode(cfg)
		if err != nil {
			reportError(env.Stderr, err, hintContext{})
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(out)
		return ExitSuccess
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, env.Stderr)
	renderer := newRenderer(cfg, logger)
	path := positional[0]

	if cfg.Serve.Addr != "" {
		ctx, stop := shutdownContext(context.Background())
		defer stop()
		err = runServe(ctx, path, cfg, renderer, logger, env)
		if err != nil {
			reportError(env.Stderr, err, hintContext{catalog: path, addr: cfg.Serve.Addr})
		}
		return exitCodeFor(err)
	}

	return runRender(context.Background(), path, cfg, renderer, logger, env)
}

// runRender renders the catalog once and writes it to stdout or the output
// file. A render failure prints the legacy message on stdout, the error and
// a hint on stderr, and returns a non-zero code.
func runRender(ctx context.Context, path string, cfg *config.Config, renderer *booklist.Renderer, logger *slog.Logger, env *Environment) int {
	result, err := renderCatalog(ctx, path, renderer, env)
	if err != nil {
		fmt.Fprintln(env.Stdout, booklist.LegacyMessage(path, err))
		reportError(env.Stderr, err, hintContext{catalog: path})
		return exitCodeFor(err)
	}

	logger.Info("rendered book list",
		"catalog", path,
		"rows", result.Rows,
		"columns", len(result.Columns),
		"dropped", result.Dropped,
	)

	html := result.HTML
	if cfg.Output.Document {
		css, err := resolveCSS(cfg)
		if err != nil {
			reportError(env.Stderr, err, hintContext{})
			return exitCodeFor(err)
		}
		html = booklist.WrapDocument(html, css, cfg.Output.Title)
	}

	if err := writeOutput(html, cfg, env); err != nil {
		reportError(env.Stderr, err, hintContext{})
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// renderCatalog reads the catalog through the environment and renders it.
func renderCatalog(ctx context.Context, path string, renderer *booklist.Renderer, env *Environment) (*booklist.Result, error) {
	read := env.ReadCatalog
	if read == nil {
		read = booklist.ReadCatalog
	}
	catalog, err := read(ctx, path)
	if err != nil {
		return nil, err
	}
	return renderer.RenderCatalog(ctx, catalog)
}

// runServe starts the preview server and blocks until ctx is canceled.
func runServe(ctx context.Context, path string, cfg *config.Config, renderer *booklist.Renderer, logger *slog.Logger, env *Environment) error {
	css, err := resolveCSS(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		CatalogPath: path,
		Renderer:    renderer,
		CSS:         css,
		Title:       cfg.Output.Title,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	serve := env.Serve
	if serve == nil {
		serve = func(ctx context.Context, srv *server.Server, addr string) error {
			return srv.ListenAndServe(ctx, addr)
		}
	}
	return serve(ctx, srv, cfg.Serve.Addr)
}

// writeOutput writes the rendered HTML followed by a newline.
func writeOutput(html string, cfg *config.Config, env *Environment) error {
	if cfg.Output.Path != "" {
		if err := fileutil.WriteFileAtomic(cfg.Output.Path, html+"\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if cfg.Output.Color {
		if err := highlight.HTML(env.Stdout, html, ""); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		_, err := fmt.Fprintln(env.Stdout)
		return err
	}

	if _, err := fmt.Fprintln(env.Stdout, html); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name := configName(flags, envCfg); name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configName returns the config requested by flag or environment.
func configName(flags *cliFlags, envCfg *envConfig) string {
	if flags.common.config != "" {
		return flags.common.config
	}
	return envCfg.ConfigPath
}

// mergeFlags applies explicitly given CLI flags over cfg (CLI wins).
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.changed("output") {
		cfg.Output.Path = flags.output.path
	}
	if flags.changed("document") {
		cfg.Output.Document = flags.output.document
	}
	if flags.changed("title") {
		cfg.Output.Title = flags.output.title
	}
	if flags.changed("style") {
		cfg.Output.Style = flags.output.style
	}
	if flags.changed("color") {
		cfg.Output.Color = flags.output.color
	}
	if flags.changed("asset-path") {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.render.legacyRowID {
		cfg.Render.RowID = config.RowIDPosition
		cfg.Render.RowIDIndex = booklist.LegacyRowIDIndex
	}
	if flags.changed("markdown") {
		cfg.Render.MarkdownDescriptions = flags.render.markdown
	}
	if flags.changed("serve") {
		cfg.Serve.Addr = flags.serve
	}
	if flags.changed("log-level") {
		cfg.Log.Level = flags.log.level
	}
	if flags.changed("log-format") {
		cfg.Log.Format = flags.log.format
	}

	// Verbose raises the level so the render summary is shown; quiet mutes
	// unknown-column warnings.
	if flags.common.verbose && !flags.changed("log-level") {
		cfg.Log.Level = "info"
	}
	if flags.common.quiet {
		cfg.Render.WarnUnknownColumns = false
		if !flags.changed("log-level") {
			cfg.Log.Level = "error"
		}
	}
}

// newRenderer builds the library renderer from the effective configuration.
func newRenderer(cfg *config.Config, logger *slog.Logger) *booklist.Renderer {
	rowID := booklist.RowIDFromISBN()
	if strings.EqualFold(cfg.Render.RowID, config.RowIDPosition) {
		rowID = booklist.RowIDAtIndex(cfg.Render.RowIDIndex)
	}
	return booklist.NewRenderer(
		booklist.WithRowID(rowID),
		booklist.WithMarkdownDescriptions(cfg.Render.MarkdownDescriptions),
		booklist.WithUnknownColumnWarnings(cfg.Render.WarnUnknownColumns),
		booklist.WithLogger(logger),
	)
}

// resolveCSS loads the stylesheet named by output.style. Values that look
// like paths are read from disk; names go through the asset resolver.
func resolveCSS(cfg *config.Config) (string, error) {
	style := cfg.Output.Style
	if style == "" {
		style = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(style) || strings.EqualFold(filepath.Ext(style), ".css") {
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided stylesheet path
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadStyle, err)
		}
		return string(data), nil
	}

	resolver, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", err
	}
	css, err := resolver.LoadStyle(style)
	if err != nil {
		return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(resolver.Available()))
	}
	return css, nil
}

// hintContext carries what hint builders need to know about the failure.
type hintContext struct {
	catalog    string
	configName string
	addr       string
}

// reportError writes the error and a matching hint to w.
func reportError(w io.Writer, err error, hc hintContext) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err, hc))
}

// hintFor picks the hint for an error, or "" if none applies.
func hintFor(err error, hc hintContext) string {
	switch {
	case errors.Is(err, booklist.ErrFileNotFound):
		return hints.ForFileNotFound(hc.catalog)
	case errors.Is(err, booklist.ErrMalformedRow):
		return hints.ForMalformedRow()
	case errors.Is(err, booklist.ErrParseCatalog):
		return hints.ForParseCatalog()
	case errors.Is(err, booklist.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(hc.configName) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(hc.configName))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, server.ErrListen):
		return hints.ForListen(hc.addr)
	}
	return ""
}
