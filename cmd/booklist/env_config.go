package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-booklist/internal/config"
)

// envPrefix is the prefix shared by every recognized environment variable.
const envPrefix = "BOOKLIST_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // BOOKLIST_CONFIG: config file name or path
	Output     string // BOOKLIST_OUTPUT: output file path
	Title      string // BOOKLIST_TITLE: page title in document mode
	Style      string // BOOKLIST_STYLE: stylesheet name or path
	AssetPath  string // BOOKLIST_ASSET_PATH: custom asset directory
	RowID      string // BOOKLIST_ROW_ID: isbn or position
	ServeAddr  string // BOOKLIST_SERVE_ADDR: preview server address
	LogLevel   string // BOOKLIST_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // BOOKLIST_LOG_FORMAT: text, json

	Document *bool // BOOKLIST_DOCUMENT: wrap in a full page
	Markdown *bool // BOOKLIST_MARKDOWN: Markdown descriptions
}

// knownEnvVars lists valid BOOKLIST_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BOOKLIST_CONFIG":     true,
	"BOOKLIST_OUTPUT":     true,
	"BOOKLIST_TITLE":      true,
	"BOOKLIST_STYLE":      true,
	"BOOKLIST_ASSET_PATH": true,
	"BOOKLIST_ROW_ID":     true,
	"BOOKLIST_SERVE_ADDR": true,
	"BOOKLIST_LOG_LEVEL":  true,
	"BOOKLIST_LOG_FORMAT": true,
	"BOOKLIST_DOCUMENT":   true,
	"BOOKLIST_MARKDOWN":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("BOOKLIST_CONFIG"),
		Output:     getenv("BOOKLIST_OUTPUT"),
		Title:      getenv("BOOKLIST_TITLE"),
		Style:      getenv("BOOKLIST_STYLE"),
		AssetPath:  getenv("BOOKLIST_ASSET_PATH"),
		RowID:      getenv("BOOKLIST_ROW_ID"),
		ServeAddr:  getenv("BOOKLIST_SERVE_ADDR"),
		LogLevel:   getenv("BOOKLIST_LOG_LEVEL"),
		LogFormat:  getenv("BOOKLIST_LOG_FORMAT"),
	}
	cfg.Document = parseEnvBool(getenv("BOOKLIST_DOCUMENT"))
	cfg.Markdown = parseEnvBool(getenv("BOOKLIST_MARKDOWN"))
	return cfg
}

func parseEnvBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars writes a warning for each unrecognized BOOKLIST_* variable.
// Helps catch typos like BOOKLIST_STYEL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// loadDotEnv runs the .env loader. A missing .env file is not an error.
func loadDotEnv(load func() error, w io.Writer) {
	if load == nil {
		return
	}
	if err := load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "warning: ignoring .env: %v\n", err)
	}
}

// applyEnvConfig applies environment variable values over the config file.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.Title != "" {
		cfg.Output.Title = env.Title
	}
	if env.Style != "" {
		cfg.Output.Style = env.Style
	}
	if env.Document != nil {
		cfg.Output.Document = *env.Document
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.RowID != "" {
		cfg.Render.RowID = env.RowID
	}
	if env.Markdown != nil {
		cfg.Render.MarkdownDescriptions = *env.Markdown
	}
	if env.ServeAddr != "" {
		cfg.Serve.Addr = env.ServeAddr
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
