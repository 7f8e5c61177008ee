package ui

import (
	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/logging/events"
)

// tab runs the browser's sequential focus navigation: listeners see the Tab
// keydown first, and focus moves only when none of them prevented it.
func (m *Model) tab(backward bool) {
	ev := dom.Event{Key: dom.KeyTab, Shift: backward}
	down := m.keyEvent(dom.KeyDown, ev)
	m.doc.Dispatch(down)
	if !down.DefaultPrevented() {
		if next := m.nextTabbable(backward); next != nil {
			_ = next.Focus()
			events.UI.Tab(describe(next), backward)
		}
	}
	m.doc.Dispatch(m.keyEvent(dom.KeyUp, ev))
}

func (m *Model) nextTabbable(backward bool) dom.Node {
	order := m.doc.Tabbables(m.hidden)
	if len(order) == 0 {
		return nil
	}
	idx := dom.IndexOf(order, m.doc.ActiveElement())
	switch {
	case idx < 0 && backward:
		return order[len(order)-1]
	case idx < 0:
		return order[0]
	case backward:
		return order[(idx-1+len(order))%len(order)]
	}
	return order[(idx+1)%len(order)]
}

// hidden reports subtrees that are not rendered and therefore cannot take
// focus: option lists of closed selects.
func (m *Model) hidden(n dom.Node) bool {
	if m.page == nil || m.page.Listboxes == nil {
		return false
	}
	for _, inst := range m.page.Listboxes.Instances() {
		if dom.Same(inst.List(), n) {
			return !inst.IsOpen()
		}
	}
	return false
}

// activate handles Enter and Space. Controllers see the keydown first; when
// none of them consumed it, buttons and links are clicked as a browser does.
func (m *Model) activate(ev dom.Event) {
	target := m.doc.ActiveElement()
	down := m.press(ev)
	if down.DefaultPrevented() || target == nil || !activatable(target) {
		return
	}
	if !dom.Same(target, m.doc.ActiveElement()) {
		return
	}
	m.click(target)
}

func activatable(n dom.Node) bool {
	switch n.Tag() {
	case "button":
		return true
	case "a":
		_, ok := n.Attr("href")
		return ok
	}
	return false
}
