// Package listbox implements the custom select widget: a trigger button, a
// hidden form value and a list of options navigable by arrow keys and
// type-ahead.
//
// Every select on a page is owned by one Controller so that opening one
// instance closes the others inside the same event handler. The type-ahead
// buffer is shared by all instances.
package listbox

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/focusring"
	"github.com/atomicstack/pagekit/internal/logging/events"
	"github.com/atomicstack/pagekit/internal/widget"
)

// Options selects the select elements and tunes type-ahead.
type Options struct {
	Container string `yaml:"container"`
	Trigger   string `yaml:"trigger"`
	Hidden    string `yaml:"hidden"`
	List      string `yaml:"list"`
	Option    string `yaml:"option"`

	NameAttr   string `yaml:"name_attr"`
	ValueAttr  string `yaml:"value_attr"`
	OpenClass  string `yaml:"open_class"`
	MatchClass string `yaml:"match_class"`

	TypeAheadWindow time.Duration `yaml:"typeahead_window"`
}

// DefaultOptions matches the stock page markup.
func DefaultOptions() Options {
	return Options{
		Container:       ".custom-select",
		Trigger:         ".select-trigger",
		Hidden:          `input[type="hidden"]`,
		List:            ".select-options",
		Option:          ".option",
		NameAttr:        "data-select-name",
		ValueAttr:       "data-value",
		OpenClass:       "open",
		MatchClass:      "match",
		TypeAheadWindow: focusring.DefaultWindow,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&o.Container, def.Container)
	fill(&o.Trigger, def.Trigger)
	fill(&o.Hidden, def.Hidden)
	fill(&o.List, def.List)
	fill(&o.Option, def.Option)
	fill(&o.NameAttr, def.NameAttr)
	fill(&o.ValueAttr, def.ValueAttr)
	fill(&o.OpenClass, def.OpenClass)
	fill(&o.MatchClass, def.MatchClass)
	if o.TypeAheadWindow <= 0 {
		o.TypeAheadWindow = def.TypeAheadWindow
	}
	return o
}

// Controller owns every select instance on a page.
type Controller struct {
	env       widget.Env
	opts      Options
	typeahead *focusring.TypeAhead
	instances []*Instance
	skipped   []*widget.MissingError
}

// Mount attaches behaviour to every container matching opts.Container.
// Containers without a trigger or hidden value holder are skipped and
// reported by Skipped.
func Mount(env widget.Env, opts Options) *Controller {
	env = env.WithDefaults()
	opts = opts.withDefaults()
	c := &Controller{
		env:       env,
		opts:      opts,
		typeahead: focusring.NewTypeAhead(env.Clock, opts.TypeAheadWindow),
	}

	for i, root := range env.Doc.QueryAll(opts.Container) {
		inst := &Instance{
			c:       c,
			root:    root,
			trigger: root.Query(opts.Trigger),
			hidden:  root.Query(opts.Hidden),
			list:    root.Query(opts.List),
		}
		var missing []string
		if inst.hidden == nil {
			missing = append(missing, opts.Hidden)
		}
		if inst.trigger == nil {
			missing = append(missing, opts.Trigger)
		}
		if len(missing) > 0 {
			events.Listbox.Skip(i, fmt.Sprint(missing))
			c.skipped = append(c.skipped, &widget.MissingError{
				Component: fmt.Sprintf("select #%d", i),
				Elements:  missing,
			})
			continue
		}
		inst.name = inst.resolveName(i)
		inst.init()
		c.instances = append(c.instances, inst)
	}

	env.Doc.Listen(dom.Click, c.handleDocumentClick)
	env.Doc.Listen(dom.KeyDown, c.handleKeyDown)
	return c
}

// Instances returns the mounted instances in document order.
func (c *Controller) Instances() []*Instance { return c.instances }

// Skipped reports the containers left without behaviour.
func (c *Controller) Skipped() []*widget.MissingError { return c.skipped }

// Instance returns the instance with the given name, or nil.
func (c *Controller) Instance(name string) *Instance {
	for _, inst := range c.instances {
		if inst.name == name {
			return inst
		}
	}
	return nil
}

// Current returns the open instance, or nil.
func (c *Controller) Current() *Instance {
	for _, inst := range c.instances {
		if inst.open {
			return inst
		}
	}
	return nil
}

// AnyOpen reports whether some instance is open.
func (c *Controller) AnyOpen() bool { return c.Current() != nil }

// Owner returns the instance whose container holds n, or nil.
func (c *Controller) Owner(n dom.Node) *Instance {
	for _, inst := range c.instances {
		if inst.root.Contains(n) {
			return inst
		}
	}
	return nil
}

// TypeAheadBuffer returns the shared type-ahead prefix.
func (c *Controller) TypeAheadBuffer() string { return c.typeahead.Buffer() }

func (c *Controller) closeOthers(keep *Instance) {
	for _, inst := range c.instances {
		if inst != keep && inst.open {
			inst.close(events.ListboxReasonOther)
		}
	}
}

func (c *Controller) handleDocumentClick(ev *dom.Event) {
	for _, inst := range c.instances {
		if inst.open && !inst.root.Contains(ev.Target) {
			inst.close(events.ListboxReasonOutside)
		}
	}
}

func (c *Controller) handleKeyDown(ev *dom.Event) {
	inst := c.Current()
	if inst == nil || ev.DefaultPrevented() {
		return
	}
	if ev.Key == dom.KeyEscape {
		ev.PreventDefault()
		inst.close(events.ListboxReasonEscape)
		c.env.Guard("listbox.focus", inst.trigger.Focus())
		return
	}
	options := inst.Options()
	if len(options) == 0 || ev.HasModifier() {
		return
	}

	if r, ok := focusring.TypeAheadRune(ev.Key); ok {
		buf := c.typeahead.Push(r)
		idx := focusring.MatchPrefix(focusring.Labels(options), buf)
		events.Listbox.TypeAhead(inst.name, buf, idx)
		if idx < 0 {
			return
		}
		ev.PreventDefault()
		inst.focusOption(options, idx, buf)
		c.env.Guard("listbox.scroll", options[idx].ScrollIntoView())
		return
	}

	active := dom.IndexOf(options, c.env.Doc.ActiveElement())
	switch ev.Key {
	case dom.KeyEnter, dom.KeySpace:
		ev.PreventDefault()
		if active < 0 {
			active = 0
		}
		inst.Select(options[active])
		return
	}

	idx, ok := focusring.Resolve(options, c.env.Doc.ActiveElement(), focusring.ListKeys, ev.Key)
	if !ok {
		return
	}
	ev.PreventDefault()
	events.Listbox.Cursor(inst.name, ev.Key, idx)
	inst.focusOption(options, idx, "")
	c.env.Guard("listbox.scroll", options[idx].ScrollIntoView())
}

// Instance is one custom select.
type Instance struct {
	c       *Controller
	name    string
	root    dom.Node
	trigger dom.Node
	hidden  dom.Node
	list    dom.Node
	open    bool

	// committed is the option last committed, or the one authored as
	// selected. Nil until then.
	committed dom.Node
}

func (i *Instance) resolveName(index int) string {
	if v, ok := i.root.Attr(i.c.opts.NameAttr); ok && v != "" {
		return v
	}
	if v, ok := i.hidden.Attr("name"); ok && v != "" {
		return v
	}
	return fmt.Sprintf("select-%d", index)
}

func (i *Instance) init() {
	env := i.c.env
	env.Guard("listbox.trigger.expanded", i.trigger.SetAttr("aria-expanded", "false"))
	if i.list != nil {
		if i.list.ID() == "" {
			env.Guard("listbox.list.id", i.list.SetID("listbox-"+uuid.NewString()))
		}
		env.Guard("listbox.trigger.controls", i.trigger.SetAttr("aria-controls", i.list.ID()))
	}
	for _, opt := range i.Options() {
		tab := "-1"
		if v, _ := opt.Attr("aria-selected"); v == "true" && i.committed == nil {
			tab = "0"
			i.committed = opt
		}
		env.Guard("listbox.option.tabindex", opt.SetAttr("tabindex", tab))
	}

	i.trigger.Listen(dom.Click, i.handleTriggerClick)
	i.trigger.Listen(dom.KeyDown, i.handleTriggerKey)
	i.root.Listen(dom.Click, i.handleOptionClick)
}

// Name returns the select name.
func (i *Instance) Name() string { return i.name }

// Value returns the committed form value.
func (i *Instance) Value() string { return i.hidden.Value() }

// Label returns the trigger text.
func (i *Instance) Label() string { return i.trigger.Text() }

// IsOpen reports whether the option list is showing.
func (i *Instance) IsOpen() bool { return i.open }

// Trigger returns the trigger control.
func (i *Instance) Trigger() dom.Node { return i.trigger }

// Root returns the container element.
func (i *Instance) Root() dom.Node { return i.root }

// List returns the option list element, or nil when the markup has none.
func (i *Instance) List() dom.Node { return i.list }

// Options returns the options in document order.
func (i *Instance) Options() []dom.Node {
	return i.root.QueryAll(i.c.opts.Option)
}

// Toggle opens a closed instance or closes an open one. Opening closes every
// other instance first.
func (i *Instance) Toggle() {
	if i.open {
		i.close(events.ListboxReasonToggle)
		return
	}
	i.Open()
}

// Open closes every other instance, shows the option list and focuses the
// selected option, or the first option when none is selected.
func (i *Instance) Open() {
	i.c.closeOthers(i)
	env := i.c.env
	env.Guard("listbox.class", i.root.AddClass(i.c.opts.OpenClass))
	env.Guard("listbox.trigger.expanded", i.trigger.SetAttr("aria-expanded", "true"))
	if i.open {
		return
	}
	i.open = true

	options := i.Options()
	idx := -1
	if len(options) > 0 {
		idx = 0
		for n, opt := range options {
			if v, _ := opt.Attr("aria-selected"); v == "true" {
				idx = n
				break
			}
		}
		for n, opt := range options {
			tab := "-1"
			if n == idx {
				tab = "0"
			}
			env.Guard("listbox.option.tabindex", opt.SetAttr("tabindex", tab))
		}
		env.Guard("listbox.focus", options[idx].Focus())
		env.Guard("listbox.scroll", options[idx].ScrollIntoView())
	}
	events.Listbox.Open(i.name, idx)
}

// Close hides the option list. Closing a closed instance re-asserts the
// closed attributes only.
func (i *Instance) Close() {
	i.close(events.ListboxReasonToggle)
}

func (i *Instance) close(reason events.ListboxReason) {
	env := i.c.env
	env.Guard("listbox.class", i.root.RemoveClass(i.c.opts.OpenClass))
	env.Guard("listbox.trigger.expanded", i.trigger.SetAttr("aria-expanded", "false"))
	if !i.open {
		return
	}
	i.open = false
	if reason != events.ListboxReasonCommit {
		i.restoreCommitted()
	}
	events.Listbox.Close(i.name, reason)
}

// restoreCommitted drops what browsing left behind: highlights, and the
// focus marker on an option that was never committed.
func (i *Instance) restoreCommitted() {
	env := i.c.env
	for _, o := range i.Options() {
		i.clearHighlight(o)
		if dom.Same(o, i.committed) {
			env.Guard("listbox.option.selected", o.SetAttr("aria-selected", "true"))
			env.Guard("listbox.option.tabindex", o.SetAttr("tabindex", "0"))
			continue
		}
		if _, ok := o.Attr("aria-selected"); ok {
			env.Guard("listbox.option.selected", o.RemoveAttr("aria-selected"))
		}
		env.Guard("listbox.option.tabindex", o.SetAttr("tabindex", "-1"))
	}
}

// Select commits opt: the hidden value takes the option value, the trigger
// shows its label, it becomes the only selected option, the list closes and
// focus returns to the trigger.
func (i *Instance) Select(opt dom.Node) {
	env := i.c.env
	value, _ := opt.Attr(i.c.opts.ValueAttr)
	label := opt.Text()
	env.Guard("listbox.hidden.value", i.hidden.SetValue(value))
	env.Guard("listbox.trigger.text", i.trigger.SetText(label))
	for _, o := range i.Options() {
		i.clearHighlight(o)
		if dom.Same(o, opt) {
			continue
		}
		env.Guard("listbox.option.selected", o.RemoveAttr("aria-selected"))
		env.Guard("listbox.option.tabindex", o.SetAttr("tabindex", "-1"))
	}
	env.Guard("listbox.option.selected", opt.SetAttr("aria-selected", "true"))
	env.Guard("listbox.option.tabindex", opt.SetAttr("tabindex", "0"))
	i.committed = opt
	events.Listbox.Commit(i.name, value, label)
	i.close(events.ListboxReasonCommit)
	env.Guard("listbox.focus", i.trigger.Focus())
}

// focusOption moves the focus marker and host focus to options[idx]. A
// non-empty buffer highlights the matched prefix; any other move clears
// highlights.
func (i *Instance) focusOption(options []dom.Node, idx int, buffer string) {
	env := i.c.env
	for n, o := range options {
		if n == idx {
			continue
		}
		if v, _ := o.Attr("tabindex"); v == "0" {
			env.Guard("listbox.option.tabindex", o.SetAttr("tabindex", "-1"))
		}
		if _, ok := o.Attr("aria-selected"); ok {
			env.Guard("listbox.option.selected", o.RemoveAttr("aria-selected"))
		}
		i.clearHighlight(o)
	}
	el := options[idx]
	env.Guard("listbox.option.tabindex", el.SetAttr("tabindex", "0"))
	env.Guard("listbox.option.selected", el.SetAttr("aria-selected", "true"))
	if buffer != "" {
		match, rest := focusring.SplitMatch(el.Text(), buffer)
		if match != "" {
			env.Guard("listbox.option.highlight", el.SetHighlight(match, rest, i.c.opts.MatchClass))
		}
	} else {
		i.clearHighlight(el)
	}
	env.Guard("listbox.focus", el.Focus())
}

func (i *Instance) clearHighlight(o dom.Node) {
	if o.Query("."+i.c.opts.MatchClass) == nil {
		return
	}
	i.c.env.Guard("listbox.option.highlight", o.SetText(o.Text()))
}

func (i *Instance) handleTriggerClick(ev *dom.Event) {
	ev.StopPropagation()
	i.Toggle()
}

func (i *Instance) handleTriggerKey(ev *dom.Event) {
	switch ev.Key {
	case dom.KeyEnter, dom.KeySpace:
		ev.PreventDefault()
		ev.StopPropagation()
		i.Toggle()
	case dom.KeyEscape:
		if !i.open {
			return
		}
		ev.PreventDefault()
		i.close(events.ListboxReasonEscape)
	}
}

func (i *Instance) handleOptionClick(ev *dom.Event) {
	for _, opt := range i.Options() {
		if opt.Contains(ev.Target) {
			ev.StopPropagation()
			i.Select(opt)
			return
		}
	}
}
