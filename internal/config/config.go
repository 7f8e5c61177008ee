package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/pagekit/internal/app"
	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the YAML overrides file that was applied, if any.
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth      = "PAGEKIT_WIDTH"
	envHeight     = "PAGEKIT_HEIGHT"
	envCellWidth  = "PAGEKIT_CELL_WIDTH"
	envShowFooter = "PAGEKIT_FOOTER"
	envTrace      = "PAGEKIT_TRACE"
	envLogFile    = "PAGEKIT_LOG_FILE"
	envConfig     = "PAGEKIT_CONFIG"
	envMarkup     = "PAGEKIT_MARKUP"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("pagekit", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	b := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return b.Config(args)
}

// Binding holds flag values registered on a flag set, so a command tree can
// share the flags and resolve the configuration after parsing.
type Binding struct {
	width     *int
	height    *int
	cellWidth *int
	footer    *bool
	trace     *bool
	logFile   *string
	file      *string
	markup    *string
}

// Bind registers the configuration flags on fs with defaults taken from the
// environment.
func Bind(fs *pflag.FlagSet, environ []string) *Binding {
	env := parseEnv(environ)
	return &Binding{
		width:     fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:    fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		cellWidth: fs.Int("cell-width", envOrInt(env, envCellWidth, ui.DefaultCellWidth), "logical pixels per terminal column"),
		footer:    fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)"),
		trace:     fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:   fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		file:      fs.String("config", envOrDefault(env, envConfig, ""), "path to a YAML file with page overrides"),
		markup:    fs.String("markup", envOrDefault(env, envMarkup, ""), "path to page HTML (defaults to the built-in page)"),
	}
}

// Config resolves the parsed flags into a configuration. args is recorded
// for the startup trace.
func (b *Binding) Config(args []string) (Config, error) {
	if *b.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *b.width)
	}
	if *b.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *b.height)
	}

	opts := page.DefaultOptions()
	markupPath := *b.markup
	if *b.file != "" {
		file, err := LoadFile(*b.file, opts)
		if err != nil {
			return Config{}, err
		}
		opts = file.Page
		if markupPath == "" {
			markupPath = file.Markup
		}
	}

	cfg := Config{
		App: app.Config{
			Width:      *b.width,
			Height:     *b.height,
			CellWidth:  *b.cellWidth,
			ShowFooter: *b.footer,
			MarkupPath: markupPath,
			Page:       opts,
		},
		Logging: Logging{
			FilePath: *b.logFile,
			Trace:    *b.trace,
		},
		File: *b.file,
		Flags: map[string]string{
			"width":     strconv.Itoa(*b.width),
			"height":    strconv.Itoa(*b.height),
			"cellWidth": strconv.Itoa(*b.cellWidth),
			"footer":    strconv.FormatBool(*b.footer),
			"trace":     strconv.FormatBool(*b.trace),
			"logFile":   *b.logFile,
			"config":    *b.file,
			"markup":    *b.markup,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// File is the YAML overrides document.
type File struct {
	Markup string       `yaml:"markup"`
	Page   page.Options `yaml:"page"`
}

// LoadFile reads a YAML overrides file on top of base. Keys absent from the
// file keep their base values; unknown keys are an error.
func LoadFile(path string, base page.Options) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	file, err := ParseFile(data, base)
	if err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, nil
}

// ParseFile decodes YAML config over base. Unknown keys are rejected and
// an empty document leaves base untouched.
func ParseFile(data []byte, base page.Options) (File, error) {
	file := File{Page: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return file, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the controllers cannot work with.
func Validate(cfg Config) error {
	if cfg.App.CellWidth <= 0 {
		return fmt.Errorf("cell-width must be > 0 (got %d)", cfg.App.CellWidth)
	}
	p := cfg.App.Page
	if p.Menu.Breakpoint <= 0 {
		return fmt.Errorf("menu breakpoint must be > 0 (got %d)", p.Menu.Breakpoint)
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"announce_delay", p.AnnounceDelay},
		{"menu.opened_delay", p.Menu.OpenedDelay},
		{"menu.navigate_delay", p.Menu.NavigateDelay},
		{"menu.focus_in_delay", p.Menu.FocusInDelay},
		{"listbox.typeahead_window", p.Listbox.TypeAheadWindow},
	} {
		if d.value < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", d.name, d.value)
		}
	}
	return nil
}
