package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/ui"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagekit.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.CellWidth != ui.DefaultCellWidth {
		t.Fatalf("expected default cell width, got %d", cfg.App.CellWidth)
	}
	if cfg.App.Page != page.DefaultOptions() {
		t.Fatalf("expected default page options, got %+v", cfg.App.Page)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{"PAGEKIT_WIDTH=100", "PAGEKIT_FOOTER=true", "PAGEKIT_CELL_WIDTH=bogus", "PAGEKIT_LOG_FILE=env.log"}
	cfg, err := LoadArgs([]string{"--width", "80", "--trace"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected flag width 80, got %d", cfg.App.Width)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer from environment")
	}
	if cfg.App.CellWidth != ui.DefaultCellWidth {
		t.Fatalf("expected unparsable env to fall back, got %d", cfg.App.CellWidth)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "env.log" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Flags["width"] != "80" || cfg.Flags["trace"] != "true" {
		t.Fatalf("unexpected flags %v", cfg.Flags)
	}
	if len(cfg.Args) != 3 {
		t.Fatalf("expected args recorded, got %v", cfg.Args)
	}
}

func TestLoadArgsRejectsNegativeSizes(t *testing.T) {
	if _, err := LoadArgs([]string{"--width=-1"}, nil); err == nil {
		t.Fatalf("expected width error")
	}
	if _, err := LoadArgs([]string{"--height", "-3"}, nil); err == nil {
		t.Fatalf("expected height error")
	}
	if _, err := LoadArgs([]string{"--bogus"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestConfigFileOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
markup: other.html
page:
  announce_delay: 80ms
  menu:
    breakpoint: 1024
    opened_delay: 200ms
  listbox:
    typeahead_window: 1s
  nationality:
    placeholder: Choose a country
`)
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := cfg.App.Page
	if p.AnnounceDelay != 80*time.Millisecond || p.Menu.OpenedDelay != 200*time.Millisecond {
		t.Fatalf("expected delays from file, got %v/%v", p.AnnounceDelay, p.Menu.OpenedDelay)
	}
	if p.Menu.Breakpoint != 1024 || p.Listbox.TypeAheadWindow != time.Second {
		t.Fatalf("unexpected overrides %+v", p)
	}
	if p.Nationality.Placeholder != "Choose a country" {
		t.Fatalf("expected placeholder override, got %q", p.Nationality.Placeholder)
	}
	def := page.DefaultOptions()
	if p.Menu.Toggle != def.Menu.Toggle || p.Listbox.Container != def.Listbox.Container {
		t.Fatalf("expected untouched selectors to keep defaults")
	}
	if cfg.App.MarkupPath != "other.html" {
		t.Fatalf("expected markup from file, got %q", cfg.App.MarkupPath)
	}

	cfg, err = LoadArgs([]string{"--config", path, "--markup", "flag.html"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MarkupPath != "flag.html" {
		t.Fatalf("expected flag to win over file, got %q", cfg.App.MarkupPath)
	}
}

func TestConfigFileErrors(t *testing.T) {
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
	path := writeFile(t, "page:\n  menu:\n    brekpoint: 10\n")
	if _, err := LoadArgs([]string{"--config", path}, nil); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	empty := writeFile(t, "")
	cfg, err := LoadArgs([]string{"--config", empty}, nil)
	if err != nil {
		t.Fatalf("expected empty file to be accepted, got %v", err)
	}
	if cfg.App.Page != page.DefaultOptions() {
		t.Fatalf("expected defaults from an empty file")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--cell-width", "0"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected cell width error")
	}
	cfg, _ = LoadArgs(nil, nil)
	cfg.App.Page.Menu.Breakpoint = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected breakpoint error")
	}
	cfg, _ = LoadArgs(nil, nil)
	cfg.App.Page.Menu.NavigateDelay = -time.Millisecond
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "menu.navigate_delay") {
		t.Fatalf("expected navigate delay error, got %v", err)
	}
}
