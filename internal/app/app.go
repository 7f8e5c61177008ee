package app

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom/memdom"
	"github.com/atomicstack/pagekit/internal/logging"
	"github.com/atomicstack/pagekit/internal/markup"
	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/schedule"
	"github.com/atomicstack/pagekit/internal/ui"
	"github.com/atomicstack/pagekit/internal/widget"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	CellWidth  int
	ShowFooter bool
	// MarkupPath replaces the built-in page when set.
	MarkupPath string
	Page       page.Options
}

// Build parses the page markup, mounts the controllers and wraps the result
// in a terminal model. A nil clock uses wall time.
func Build(cfg Config, clk clock.Clock) (*ui.Model, error) {
	source := markup.Default()
	if cfg.MarkupPath != "" {
		loaded, err := markup.Load(cfg.MarkupPath)
		if err != nil {
			return nil, err
		}
		source = loaded
	}
	doc, err := memdom.ParseString(source)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	if clk == nil {
		clk = clock.New()
	}
	queue := schedule.NewQueue(clk)
	env := widget.Env{Doc: doc, Scheduler: queue, Clock: clk}
	// the log file is only opened when tracing
	if logging.TraceEnabled() {
		env.Log = logging.Logger()
	}
	p := page.Mount(env, cfg.Page)
	for _, disabled := range p.Disabled {
		env.Log.Info("controller disabled", "reason", disabled.Error())
	}
	return ui.NewModel(doc, p, queue, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		CellWidth:  cfg.CellWidth,
		ShowFooter: cfg.ShowFooter,
		Breakpoint: cfg.Page.Menu.Breakpoint,
	}), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model, err := Build(cfg, nil)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
