// Package page mounts every controller on a document in the order the page
// expects: the nationality list is populated first so the select controller
// sees its options, then the announcer, the menu and the selects.
package page

import (
	"errors"
	"time"

	"github.com/atomicstack/pagekit/internal/announce"
	"github.com/atomicstack/pagekit/internal/countries"
	"github.com/atomicstack/pagekit/internal/listbox"
	"github.com/atomicstack/pagekit/internal/logging/events"
	"github.com/atomicstack/pagekit/internal/menu"
	"github.com/atomicstack/pagekit/internal/widget"
)

// NationalityOptions controls the populated select.
type NationalityOptions struct {
	Container   string `yaml:"container"`
	Placeholder string `yaml:"placeholder"`
	Skip        bool   `yaml:"skip"`
}

// Options configures a mounted page.
type Options struct {
	LiveRegion    string             `yaml:"live_region"`
	AnnounceDelay time.Duration      `yaml:"announce_delay"`
	Nationality   NationalityOptions `yaml:"nationality"`
	Menu          menu.Options       `yaml:"menu"`
	Listbox       listbox.Options    `yaml:"listbox"`
}

// DefaultOptions matches the stock page markup.
func DefaultOptions() Options {
	return Options{
		LiveRegion:    "menu-live",
		AnnounceDelay: announce.DefaultDelay,
		Nationality: NationalityOptions{
			Container:   `.custom-select[data-select-name="nationality"] .select-options`,
			Placeholder: countries.Placeholder,
		},
		Menu:    menu.DefaultOptions(),
		Listbox: listbox.DefaultOptions(),
	}
}

// Page is a document with its controllers mounted.
type Page struct {
	Env       widget.Env
	Options   Options
	Announcer *announce.Announcer
	// Menu is nil when the menu markup is incomplete.
	Menu      *menu.Controller
	Listboxes *listbox.Controller
	// Populated counts the options written to the nationality select.
	Populated int
	// Disabled lists the controllers that installed no behaviour.
	Disabled []error
}

// Mount wires every controller onto env.Doc. Missing markup disables the
// affected controller and is reported in Page.Disabled; Mount itself never
// fails.
func Mount(env widget.Env, opts Options) *Page {
	env = env.WithDefaults()
	p := &Page{Env: env, Options: opts}

	if !opts.Nationality.Skip && opts.Nationality.Container != "" {
		n, err := countries.Populate(env.Doc, opts.Nationality.Container, opts.Nationality.Placeholder, countries.Names())
		p.Populated = n
		if err != nil && !errors.Is(err, countries.ErrNoContainer) {
			env.Log.Error(err, "populate nationality")
		}
	}

	p.Announcer = announce.New(env, env.Doc.ByID(opts.LiveRegion), opts.AnnounceDelay)

	m, err := menu.Mount(env, opts.Menu, p.Announcer)
	if err != nil {
		p.Disabled = append(p.Disabled, err)
	}
	p.Menu = m

	p.Listboxes = listbox.Mount(env, opts.Listbox)
	for _, skipped := range p.Listboxes.Skipped() {
		p.Disabled = append(p.Disabled, skipped)
	}
	if p.Menu != nil {
		p.Menu.BlockEscapeWhile(p.Listboxes.AnyOpen)
	}

	events.App.Mount(p.Menu != nil, len(p.Listboxes.Instances()))
	return p
}
