package memdom

import (
	"github.com/atomicstack/pagekit/internal/dom"
)

// Dispatch delivers ev to the listeners on its target, then on each ancestor,
// then on the document. A nil target is treated as the body.
func (d *Document) Dispatch(ev *dom.Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = asNode(d.body())
	}
	target, _ := ev.Target.(*Element)
	for e := target; e != nil; e = d.parentElement(e) {
		for _, fn := range e.listeners[ev.Type] {
			fn(ev)
		}
		if ev.Stopped() {
			return
		}
	}
	for _, fn := range d.listeners[ev.Type] {
		fn(ev)
	}
}

func (d *Document) parentElement(e *Element) *Element {
	p := e.Parent()
	if p == nil {
		return nil
	}
	pe, _ := p.(*Element)
	return pe
}

// Click dispatches a click on target.
func (d *Document) Click(target dom.Node) *dom.Event {
	ev := &dom.Event{Type: dom.Click, Target: target}
	d.Dispatch(ev)
	return ev
}

// KeyDown dispatches a keydown on the active element.
func (d *Document) KeyDown(key string) *dom.Event {
	ev := &dom.Event{Type: dom.KeyDown, Target: d.ActiveElement(), Key: key}
	d.Dispatch(ev)
	return ev
}

// KeyUp dispatches a keyup on the active element.
func (d *Document) KeyUp(key string) *dom.Event {
	ev := &dom.Event{Type: dom.KeyUp, Target: d.ActiveElement(), Key: key}
	d.Dispatch(ev)
	return ev
}

// Press dispatches keydown followed by keyup, re-reading the active element
// in between the way a browser does.
func (d *Document) Press(key string) *dom.Event {
	down := d.KeyDown(key)
	d.KeyUp(key)
	return down
}

// Resize records the viewport width and notifies document listeners.
func (d *Document) Resize(width int) {
	d.width = width
	ev := &dom.Event{Type: dom.Resize, Width: width}
	for _, fn := range d.listeners[dom.Resize] {
		fn(ev)
	}
}
