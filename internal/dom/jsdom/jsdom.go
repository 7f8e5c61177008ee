//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser document.
package jsdom

import (
	"strings"
	"time"

	"syscall/js"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/schedule"
)

// idKey tags wrapped JS elements so one element always maps to one Node.
const idKey = "__pagekitNode"

// Document wraps the global document and window.
type Document struct {
	doc   js.Value
	win   js.Value
	nodes map[int]*Element
	next  int
	// funcs keeps listener callbacks alive for the page lifetime.
	funcs []js.Func
}

// New binds the global document.
func New() *Document {
	win := js.Global()
	return &Document{
		doc:   win.Get("document"),
		win:   win,
		nodes: make(map[int]*Element),
	}
}

// Scheduler runs callbacks through window.setTimeout.
func Scheduler() schedule.Scheduler {
	return schedule.Func(func(d time.Duration, fn func()) {
		var cb js.Func
		cb = js.FuncOf(func(js.Value, []js.Value) interface{} {
			cb.Release()
			fn()
			return nil
		})
		js.Global().Call("setTimeout", cb, d.Milliseconds())
	})
}

func (d *Document) wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	if v.Get("nodeType").Int() != 1 {
		v = v.Get("parentElement")
		if v.IsNull() || v.IsUndefined() {
			return nil
		}
	}
	if id := v.Get(idKey); id.Type() == js.TypeNumber {
		if el, ok := d.nodes[id.Int()]; ok {
			return el
		}
	}
	d.next++
	el := &Element{d: d, v: v}
	d.nodes[d.next] = el
	v.Set(idKey, d.next)
	return el
}

func (d *Document) wrapList(list js.Value) []dom.Node {
	n := list.Length()
	out := make([]dom.Node, 0, n)
	for i := 0; i < n; i++ {
		if node := d.wrap(list.Index(i)); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func (d *Document) Body() dom.Node { return d.wrap(d.doc.Get("body")) }

func (d *Document) Query(selector string) dom.Node {
	return d.wrap(d.doc.Call("querySelector", selector))
}

func (d *Document) QueryAll(selector string) []dom.Node {
	return d.wrapList(d.doc.Call("querySelectorAll", selector))
}

func (d *Document) ByID(id string) dom.Node {
	return d.wrap(d.doc.Call("getElementById", id))
}

func (d *Document) ActiveElement() dom.Node {
	return d.wrap(d.doc.Get("activeElement"))
}

func (d *Document) CreateElement(tag string) dom.Node {
	return d.wrap(d.doc.Call("createElement", tag))
}

// Listen registers fn on the document. Resize listeners go on the window
// and receive its innerWidth.
func (d *Document) Listen(typ dom.EventType, fn dom.Listener) {
	target := d.doc
	if typ == dom.Resize {
		target = d.win
	}
	d.listen(target, typ, fn)
}

func (d *Document) listen(target js.Value, typ dom.EventType, fn dom.Listener) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		native := args[0]
		ev := d.event(typ, native)
		fn(ev)
		if ev.Stopped() {
			native.Call("stopPropagation")
		}
		if ev.DefaultPrevented() {
			native.Call("preventDefault")
		}
		return nil
	})
	d.funcs = append(d.funcs, cb)
	target.Call("addEventListener", string(typ), cb)
}

func (d *Document) event(typ dom.EventType, native js.Value) *dom.Event {
	ev := &dom.Event{Type: typ}
	switch typ {
	case dom.Resize:
		ev.Width = d.win.Get("innerWidth").Int()
		inheritFlags(ev, native)
		return ev
	case dom.KeyDown, dom.KeyUp:
		ev.Key = native.Get("key").String()
	}
	ev.Target = d.wrap(native.Get("target"))
	ev.Ctrl = native.Get("ctrlKey").Truthy()
	ev.Alt = native.Get("altKey").Truthy()
	ev.Meta = native.Get("metaKey").Truthy()
	ev.Shift = native.Get("shiftKey").Truthy()
	inheritFlags(ev, native)
	return ev
}

// inheritFlags carries what earlier listeners did to the native event into
// ev, since every listener gets its own dom.Event.
func inheritFlags(ev *dom.Event, native js.Value) {
	if native.Get("defaultPrevented").Truthy() {
		ev.PreventDefault()
	}
	if native.Get("cancelBubble").Truthy() {
		ev.StopPropagation()
	}
}

// Element wraps one browser element.
type Element struct {
	d *Document
	v js.Value
}

func unwrap(n dom.Node) (js.Value, bool) {
	el, ok := n.(*Element)
	if !ok || el == nil {
		return js.Undefined(), false
	}
	return el.v, true
}

func (e *Element) attached() error {
	if !e.v.Get("isConnected").Truthy() {
		return dom.ErrDetached
	}
	return nil
}

func (e *Element) Tag() string { return strings.ToLower(e.v.Get("tagName").String()) }

func (e *Element) ID() string { return e.v.Get("id").String() }

func (e *Element) SetID(id string) error {
	e.v.Set("id", id)
	return nil
}

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetAttr(name, value string) error {
	if err := e.attached(); err != nil {
		return err
	}
	e.v.Call("setAttribute", name, value)
	return nil
}

func (e *Element) RemoveAttr(name string) error {
	if err := e.attached(); err != nil {
		return err
	}
	e.v.Call("removeAttribute", name)
	return nil
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) AddClass(name string) error {
	e.v.Get("classList").Call("add", name)
	return nil
}

func (e *Element) RemoveClass(name string) error {
	e.v.Get("classList").Call("remove", name)
	return nil
}

func (e *Element) ToggleClass(name string) (bool, error) {
	return e.v.Get("classList").Call("toggle", name).Bool(), nil
}

func (e *Element) Text() string { return strings.TrimSpace(e.v.Get("textContent").String()) }

func (e *Element) SetText(text string) error {
	e.v.Set("textContent", text)
	return nil
}

func (e *Element) SetHighlight(match, rest, class string) error {
	if err := e.Clear(); err != nil {
		return err
	}
	doc := e.d.doc
	span := doc.Call("createElement", "span")
	span.Get("classList").Call("add", class)
	span.Set("textContent", match)
	e.v.Call("appendChild", span)
	e.v.Call("appendChild", doc.Call("createTextNode", rest))
	return nil
}

func (e *Element) Value() string {
	if v := e.v.Get("value"); v.Type() == js.TypeString {
		return v.String()
	}
	s, _ := e.Attr("value")
	return s
}

func (e *Element) SetValue(value string) error {
	e.v.Set("value", value)
	return nil
}

func (e *Element) Parent() dom.Node { return e.d.wrap(e.v.Get("parentElement")) }

func (e *Element) Contains(other dom.Node) bool {
	v, ok := unwrap(other)
	return ok && e.v.Call("contains", v).Bool()
}

func (e *Element) Query(selector string) dom.Node {
	return e.d.wrap(e.v.Call("querySelector", selector))
}

func (e *Element) QueryAll(selector string) []dom.Node {
	return e.d.wrapList(e.v.Call("querySelectorAll", selector))
}

func (e *Element) AppendChild(child dom.Node) error {
	v, ok := unwrap(child)
	if !ok {
		return dom.ErrDetached
	}
	e.v.Call("appendChild", v)
	return nil
}

func (e *Element) Clear() error {
	e.v.Call("replaceChildren")
	return nil
}

func (e *Element) Focus() error {
	if err := e.attached(); err != nil {
		return err
	}
	e.v.Call("focus")
	return nil
}

func (e *Element) ScrollIntoView() error {
	opts := js.Global().Get("Object").New()
	opts.Set("block", "nearest")
	e.v.Call("scrollIntoView", opts)
	return nil
}

func (e *Element) Listen(typ dom.EventType, fn dom.Listener) {
	e.d.listen(e.v, typ, fn)
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Node     = (*Element)(nil)
)
