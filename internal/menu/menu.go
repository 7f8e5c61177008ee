// Package menu implements the collapsible mobile navigation menu.
//
// The controller keeps three views of the open state in agreement: the
// "open" class on the nav container and toggle, the ARIA attributes on the
// toggle and menu region, and the tabindex of every menu item. All three are
// written together in a single call, so no listener or scheduled task can
// observe a partial transition.
package menu

import (
	"fmt"
	"time"

	"github.com/atomicstack/pagekit/internal/announce"
	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/focusring"
	"github.com/atomicstack/pagekit/internal/logging/events"
	"github.com/atomicstack/pagekit/internal/widget"
)

// Options selects the menu elements and tunes its timing.
type Options struct {
	Nav    string `yaml:"nav"`
	Toggle string `yaml:"toggle"`
	Center string `yaml:"center"`
	// Items is resolved inside Center.
	Items     string `yaml:"items"`
	CenterID  string `yaml:"center_id"`
	OpenClass string `yaml:"open_class"`

	// Breakpoint is the viewport width at which the menu is forced closed.
	Breakpoint    int           `yaml:"breakpoint"`
	OpenedDelay   time.Duration `yaml:"opened_delay"`
	NavigateDelay time.Duration `yaml:"navigate_delay"`
	FocusInDelay  time.Duration `yaml:"focus_in_delay"`
}

// DefaultOptions matches the stock page markup.
func DefaultOptions() Options {
	return Options{
		Nav:           ".primary-nav-red",
		Toggle:        ".nav-right .hamburger",
		Center:        ".nav-center",
		Items:         `a[role="menuitem"]`,
		CenterID:      "primary-nav-center",
		OpenClass:     "open",
		Breakpoint:    900,
		OpenedDelay:   120 * time.Millisecond,
		NavigateDelay: 60 * time.Millisecond,
		FocusInDelay:  40 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Nav == "" {
		o.Nav = def.Nav
	}
	if o.Toggle == "" {
		o.Toggle = def.Toggle
	}
	if o.Center == "" {
		o.Center = def.Center
	}
	if o.Items == "" {
		o.Items = def.Items
	}
	if o.CenterID == "" {
		o.CenterID = def.CenterID
	}
	if o.OpenClass == "" {
		o.OpenClass = def.OpenClass
	}
	if o.Breakpoint <= 0 {
		o.Breakpoint = def.Breakpoint
	}
	if o.OpenedDelay <= 0 {
		o.OpenedDelay = def.OpenedDelay
	}
	if o.NavigateDelay <= 0 {
		o.NavigateDelay = def.NavigateDelay
	}
	if o.FocusInDelay <= 0 {
		o.FocusInDelay = def.FocusInDelay
	}
	return o
}

// Controller owns the open/closed state of one navigation menu.
type Controller struct {
	env       widget.Env
	opts      Options
	announcer *announce.Announcer

	nav    dom.Node
	toggle dom.Node
	center dom.Node

	open          bool
	escapeBlocked func() bool
}

// Mount looks up the menu elements, writes the initial closed state and
// installs the listeners. When the toggle, nav container or menu region is
// missing it installs nothing and returns a *widget.MissingError.
func Mount(env widget.Env, opts Options, announcer *announce.Announcer) (*Controller, error) {
	env = env.WithDefaults()
	opts = opts.withDefaults()
	c := &Controller{
		env:       env,
		opts:      opts,
		announcer: announcer,
		nav:       env.Doc.Query(opts.Nav),
		toggle:    env.Doc.Query(opts.Toggle),
		center:    env.Doc.Query(opts.Center),
	}

	var missing []string
	if c.toggle == nil {
		missing = append(missing, opts.Toggle)
	}
	if c.nav == nil {
		missing = append(missing, opts.Nav)
	}
	if c.center == nil {
		missing = append(missing, opts.Center)
	}
	if len(missing) > 0 {
		events.Menu.Disabled(missing)
		return nil, &widget.MissingError{Component: "menu", Elements: missing}
	}

	if c.center.ID() == "" {
		c.env.Guard("menu.center.id", c.center.SetID(opts.CenterID))
	}
	c.env.Guard("menu.toggle.expanded", c.toggle.SetAttr("aria-expanded", "false"))
	c.env.Guard("menu.toggle.controls", c.toggle.SetAttr("aria-controls", c.center.ID()))
	c.setOpen(false, events.MenuReasonToggle)

	c.center.Listen(dom.KeyDown, c.handleNavigation)
	c.center.Listen(dom.FocusIn, c.handleFocusIn)
	c.toggle.Listen(dom.Click, c.handleToggleClick)
	env.Doc.Listen(dom.Click, c.handleDocumentClick)
	env.Doc.Listen(dom.KeyDown, c.handleEscape)
	env.Doc.Listen(dom.Resize, c.handleResize)
	return c, nil
}

// BlockEscapeWhile makes the global Escape handler stand down while fn
// reports true, so Escape closes an open dropdown before it closes the menu.
func (c *Controller) BlockEscapeWhile(fn func() bool) {
	c.escapeBlocked = fn
}

// IsOpen reports the current state.
func (c *Controller) IsOpen() bool { return c.open }

// Toggle flips the state.
func (c *Controller) Toggle() {
	c.setOpen(!c.open, events.MenuReasonToggle)
}

// SetOpen moves the menu to the requested state. Requesting the current state
// re-asserts the attributes but neither moves focus nor announces.
func (c *Controller) SetOpen(open bool) {
	c.setOpen(open, events.MenuReasonToggle)
}

// Nav returns the navigation container.
func (c *Controller) Nav() dom.Node { return c.nav }

// ToggleNode returns the toggle control.
func (c *Controller) ToggleNode() dom.Node { return c.toggle }

// Items returns the menu items in document order.
func (c *Controller) Items() []dom.Node {
	return c.center.QueryAll(c.opts.Items)
}

func (c *Controller) setOpen(open bool, reason events.MenuReason) {
	changed := open != c.open
	c.open = open

	items := c.Items()
	if open {
		c.env.Guard("menu.nav.class", c.nav.AddClass(c.opts.OpenClass))
		c.env.Guard("menu.toggle.class", c.toggle.AddClass(c.opts.OpenClass))
		c.env.Guard("menu.toggle.expanded", c.toggle.SetAttr("aria-expanded", "true"))
		c.env.Guard("menu.center.hidden", c.center.SetAttr("aria-hidden", "false"))
		c.setReachable(true)
		if !changed {
			return
		}
		events.Menu.Open(len(items))
		// an empty menu has nothing to focus or announce
		if len(items) > 0 {
			c.env.Guard("menu.focus", items[0].Focus())
			c.announcer.Announce("Menu opened")
			c.env.Scheduler.After(c.opts.OpenedDelay, c.announceCurrentFocused)
		}
		return
	}

	c.env.Guard("menu.nav.class", c.nav.RemoveClass(c.opts.OpenClass))
	c.env.Guard("menu.toggle.class", c.toggle.RemoveClass(c.opts.OpenClass))
	c.env.Guard("menu.toggle.expanded", c.toggle.SetAttr("aria-expanded", "false"))
	c.env.Guard("menu.center.hidden", c.center.SetAttr("aria-hidden", "true"))
	c.setReachable(false)
	if !changed {
		return
	}
	events.Menu.Close(reason)
	c.env.Guard("menu.focus", c.toggle.Focus())
	c.announcer.Announce("Menu closed")
}

func (c *Controller) setReachable(reachable bool) {
	value := "-1"
	if reachable {
		value = "0"
	}
	for _, item := range c.Items() {
		c.env.Guard("menu.item.tabindex", item.SetAttr("tabindex", value))
	}
}

func (c *Controller) announceCurrentFocused() {
	items := c.Items()
	active := c.env.Doc.ActiveElement()
	if active == nil {
		return
	}
	label := active.Text()
	if idx := dom.IndexOf(items, active); idx >= 0 {
		c.announcer.Announce(fmt.Sprintf("%s. %d of %d", label, idx+1, len(items)))
		return
	}
	if label != "" {
		c.announcer.Announce(label)
	}
}

func (c *Controller) handleNavigation(ev *dom.Event) {
	items := c.Items()
	target, ok := focusring.Navigate(items, c.env.Doc.ActiveElement(), focusring.MenuKeys, ev.Key)
	if !ok {
		return
	}
	ev.PreventDefault()
	events.Menu.Cursor(ev.Key, dom.IndexOf(items, target), target.Text())
	c.env.Scheduler.After(c.opts.NavigateDelay, c.announceCurrentFocused)
}

func (c *Controller) handleFocusIn(*dom.Event) {
	c.env.Scheduler.After(c.opts.FocusInDelay, c.announceCurrentFocused)
}

func (c *Controller) handleToggleClick(ev *dom.Event) {
	ev.StopPropagation()
	c.Toggle()
}

func (c *Controller) handleDocumentClick(ev *dom.Event) {
	if c.nav.Contains(ev.Target) {
		return
	}
	c.setOpen(false, events.MenuReasonOutside)
}

func (c *Controller) handleEscape(ev *dom.Event) {
	if ev.Key != dom.KeyEscape || ev.DefaultPrevented() {
		return
	}
	if c.escapeBlocked != nil && c.escapeBlocked() {
		return
	}
	c.setOpen(false, events.MenuReasonEscape)
}

func (c *Controller) handleResize(ev *dom.Event) {
	if ev.Width >= c.opts.Breakpoint {
		c.setOpen(false, events.MenuReasonResize)
	}
}
