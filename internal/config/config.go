package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-booklist/internal/fileutil"
	"github.com/alnah/go-booklist/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "go-booklist"

// Row identifier modes.
const (
	RowIDISBN     = "isbn"
	RowIDPosition = "position"
)

// Field length limits.
const (
	MaxPathLength  = 4096
	MaxTitleLength = 200
	MaxNameLength  = 100
	MaxAddrLength  = 255
)

// Config holds all configuration for rendering a book list.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
	Serve  ServeConfig  `yaml:"serve"`
}

// OutputConfig defines where and how the table is written.
type OutputConfig struct {
	Path     string `yaml:"path"`     // empty = stdout
	Document bool   `yaml:"document"` // wrap the fragment in a full HTML page
	Title    string `yaml:"title"`    // <title> of the page in document mode
	Style    string `yaml:"style"`    // stylesheet name used in document mode
	Color    bool   `yaml:"color"`    // syntax-highlight HTML on the terminal
}

// RenderConfig defines table rendering options.
type RenderConfig struct {
	RowID                string `yaml:"rowId"`                // "isbn" or "position"
	RowIDIndex           int    `yaml:"rowIdIndex"`           // cell index when rowId is "position"
	MarkdownDescriptions bool   `yaml:"markdownDescriptions"` // render Description as Markdown
	WarnUnknownColumns   bool   `yaml:"warnUnknownColumns"`   // log columns with no cell rule
}

// AssetsConfig defines stylesheet loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = built-in styles only
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// ServeConfig defines the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"` // empty = print once and exit
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Style: "default"},
		Render: RenderConfig{
			RowID:              RowIDISBN,
			RowIDIndex:         7,
			WarnUnknownColumns: true,
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate checks enumerations, ranges, and field lengths.
// Called automatically by LoadConfig, and by the CLI after flags are merged.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.title", c.Output.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.style", c.Output.Style, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("serve.addr", c.Serve.Addr, MaxAddrLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Render.RowID) {
	case RowIDISBN, RowIDPosition:
	default:
		return fmt.Errorf("%w: render.rowId %q (must be isbn or position)", ErrInvalidValue, c.Render.RowID)
	}
	if c.Render.RowIDIndex < 0 {
		return fmt.Errorf("%w: render.rowIdIndex must not be negative, got %d", ErrInvalidValue, c.Render.RowIDIndex)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; otherwise it is a
// name searched as ./name.yaml, ./name.yml, then in the user config dir.
// Values absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
