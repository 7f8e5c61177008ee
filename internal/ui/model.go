package ui

import (
	"reflect"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom/memdom"
	"github.com/atomicstack/pagekit/internal/logging/events"
	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/schedule"
	"github.com/atomicstack/pagekit/internal/theme"
	uistate "github.com/atomicstack/pagekit/internal/ui/state"
)

// DefaultCellWidth is the number of logical pixels one terminal column
// stands for when reporting the viewport width to the page.
const DefaultCellWidth = 8

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the terminal host.
type Options struct {
	// Width and Height pin the view size; zero follows the terminal.
	Width  int
	Height int
	// CellWidth converts columns to the page's pixel width.
	CellWidth  int
	ShowFooter bool
	// Breakpoint is the pixel width at which the menu renders inline.
	Breakpoint int
}

type timerMsg struct {
	at time.Time
}

// Model implements the Bubble Tea model hosting a mounted page.
type Model struct {
	doc   *memdom.Document
	page  *page.Page
	queue *schedule.Queue
	clock clock.Clock
	keys  keyMap

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	cellWidth   int
	breakpoint  int
	showFooter  bool

	tick    func(time.Duration) tea.Cmd
	tickDue time.Time

	rows      [][]hit
	viewports uistate.Viewports

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps a page already mounted on doc. queue must be the scheduler
// the page's controllers were mounted with.
func NewModel(doc *memdom.Document, p *page.Page, queue *schedule.Queue, opts Options) *Model {
	m := &Model{
		doc:        doc,
		page:       p,
		queue:      queue,
		clock:      queue.Clock(),
		keys:       defaultKeyMap(),
		cellWidth:  opts.CellWidth,
		breakpoint: opts.Breakpoint,
		showFooter: opts.ShowFooter,
		tick:       tickAfter,
		viewports:  uistate.Viewports{},
	}
	if m.cellWidth <= 0 {
		m.cellWidth = DefaultCellWidth
	}
	if m.breakpoint <= 0 {
		m.breakpoint = page.DefaultOptions().Menu.Breakpoint
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.resizeDocument()
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyPressMsg{}):   m.handleKeyMsg,
		reflect.TypeOf(tea.MouseClickMsg{}): m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(timerMsg{}):          m.handleTimerMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if cmd := m.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func tickAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return timerMsg{at: t} })
}

// scheduleTick arms a tick for the earliest pending task unless one that
// fires no later is already armed.
func (m *Model) scheduleTick() tea.Cmd {
	if m.tick == nil || m.queue == nil {
		return nil
	}
	wait, ok := m.queue.Next()
	if !ok {
		return nil
	}
	due := m.clock.Now().Add(wait)
	if !m.tickDue.IsZero() && !due.Before(m.tickDue) {
		return nil
	}
	m.tickDue = due
	return m.tick(wait)
}

func (m *Model) handleTimerMsg(tea.Msg) tea.Cmd {
	m.tickDue = time.Time{}
	m.drain()
	return nil
}

func (m *Model) drain() {
	ran := m.queue.RunDue()
	if ran > 0 {
		events.Timer.Drain(ran, m.queue.Len())
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
		m.resizeDocument()
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) resizeDocument() {
	px := m.width * m.cellWidth
	events.UI.Resize(m.width, px)
	m.doc.Resize(px)
}

// wide reports whether the page is laid out for a desktop-width viewport.
func (m *Model) wide() bool {
	return m.doc.Width() >= m.breakpoint
}

// Page returns the hosted page.
func (m *Model) Page() *page.Page { return m.page }

// Document returns the hosted document.
func (m *Model) Document() *memdom.Document { return m.doc }
