package ui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(press, m.keys.Quit):
		return tea.Quit
	case key.Matches(press, m.keys.Next):
		m.tab(false)
		return nil
	case key.Matches(press, m.keys.Prev):
		m.tab(true)
		return nil
	}
	ev, ok := domKey(press)
	if !ok {
		return nil
	}
	if key.Matches(press, m.keys.Activate) {
		m.activate(ev)
		return nil
	}
	m.press(ev)
	return nil
}

// press dispatches keydown then keyup. The keyup target is re-read since a
// keydown listener may have moved focus.
func (m *Model) press(ev dom.Event) *dom.Event {
	down := m.keyEvent(dom.KeyDown, ev)
	events.UI.Key(ev.Key, describe(down.Target))
	m.doc.Dispatch(down)
	m.doc.Dispatch(m.keyEvent(dom.KeyUp, ev))
	return down
}

func (m *Model) keyEvent(typ dom.EventType, ev dom.Event) *dom.Event {
	return &dom.Event{
		Type:   typ,
		Target: m.doc.ActiveElement(),
		Key:    ev.Key,
		Ctrl:   ev.Ctrl,
		Alt:    ev.Alt,
		Meta:   ev.Meta,
		Shift:  ev.Shift,
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	click, ok := msg.(tea.MouseClickMsg)
	if !ok {
		return nil
	}
	mouse := click.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	m.click(m.nodeAt(mouse.X, mouse.Y))
	return nil
}

// click focuses target when it can take focus and dispatches a click on it.
// A nil target clicks the body.
func (m *Model) click(target dom.Node) {
	if target != nil && focusable(target) && !dom.Same(target, m.doc.ActiveElement()) {
		_ = target.Focus()
	}
	events.UI.Click(describe(target))
	m.doc.Click(target)
}

func focusable(n dom.Node) bool {
	if _, ok := n.Attr("tabindex"); ok {
		return true
	}
	switch n.Tag() {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		_, ok := n.Attr("href")
		return ok
	}
	return false
}

func describe(n dom.Node) string {
	if n == nil {
		return "body"
	}
	if id := n.ID(); id != "" {
		return n.Tag() + "#" + id
	}
	if class, ok := n.Attr("class"); ok && class != "" {
		return n.Tag() + "." + class
	}
	return n.Tag()
}
