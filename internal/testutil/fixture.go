// Package testutil builds page fixtures for controller and host tests.
package testutil

import (
	"fmt"
	"html"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom/memdom"
	"github.com/atomicstack/pagekit/internal/schedule"
	"github.com/atomicstack/pagekit/internal/widget"
)

// Fixture is a parsed document driven by a mock clock.
type Fixture struct {
	Doc   *memdom.Document
	Clock *clock.Mock
	Queue *schedule.Queue
	Env   widget.Env
}

// NewFixture parses markup into a document whose scheduler runs on a mock
// clock. Nothing fires until the test advances time.
func NewFixture(t *testing.T, markup string) *Fixture {
	t.Helper()
	doc, err := memdom.ParseString(markup)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	mock := clock.NewMock()
	q := schedule.NewQueue(mock)
	return &Fixture{
		Doc:   doc,
		Clock: mock,
		Queue: q,
		Env:   widget.Env{Doc: doc, Scheduler: q, Clock: mock},
	}
}

// Advance moves the clock forward by d, running every task that falls due.
func (f *Fixture) Advance(d time.Duration) {
	schedule.Advance(f.Clock, f.Queue, d)
}

// Settle runs scheduled tasks until the queue is empty, including tasks
// scheduled by the tasks it runs.
func (f *Fixture) Settle() {
	for i := 0; i < 1000; i++ {
		wait, ok := f.Queue.Next()
		if !ok {
			return
		}
		f.Advance(wait)
	}
}

// Option describes one authored select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Options builds options whose value equals their label.
func Options(labels ...string) []Option {
	out := make([]Option, len(labels))
	for i, l := range labels {
		out[i] = Option{Value: l, Label: l}
	}
	return out
}

// Nav renders a navigation bar with one menu item per label.
func Nav(labels ...string) string {
	var b strings.Builder
	b.WriteString(`<nav class="primary-nav-red">`)
	b.WriteString(`<div class="nav-left"><a class="brand" href="#">Brand</a></div>`)
	b.WriteString(`<div class="nav-center" role="menu">`)
	for _, l := range labels {
		fmt.Fprintf(&b, `<a href="#%s" role="menuitem">%s</a>`, strings.ToLower(html.EscapeString(l)), html.EscapeString(l))
	}
	b.WriteString(`</div>`)
	b.WriteString(`<div class="nav-right"><button class="hamburger" aria-label="Menu">Menu</button></div>`)
	b.WriteString(`</nav>`)
	return b.String()
}

// LiveRegion renders the menu announcement region.
func LiveRegion() string {
	return `<div id="menu-live" aria-live="polite" class="sr-only"></div>`
}

// Select renders a custom select named name.
func Select(name, label string, options ...Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="custom-select" data-select-name="%s">`, html.EscapeString(name))
	fmt.Fprintf(&b, `<input type="hidden" name="%s" value="">`, html.EscapeString(name))
	fmt.Fprintf(&b, `<button class="select-trigger" aria-haspopup="listbox">%s</button>`, html.EscapeString(label))
	b.WriteString(`<div class="select-options" role="listbox">`)
	for _, o := range options {
		selected := ""
		if o.Selected {
			selected = ` aria-selected="true"`
		}
		fmt.Fprintf(&b, `<div class="option" role="option" data-value="%s"%s>%s</div>`,
			html.EscapeString(o.Value), selected, html.EscapeString(o.Label))
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

// Page wraps parts in a document body with an unrelated paragraph that tests
// can click as "outside".
func Page(parts ...string) string {
	return `<!DOCTYPE html><html><head><title>fixture</title></head><body>` +
		strings.Join(parts, "") +
		`<main><p id="outside">Body text</p></main></body></html>`
}
