package memdom

import (
	"errors"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atomicstack/pagekit/internal/dom"
)

var errForeignNode = errors.New("memdom: node belongs to another host")

// Element wraps an element node of a Document.
type Element struct {
	doc       *Document
	n         *html.Node
	listeners map[dom.EventType][]dom.Listener
}

var _ dom.Node = (*Element)(nil)

// HTMLNode exposes the underlying x/net/html node.
func (e *Element) HTMLNode() *html.Node { return e.n }

func (e *Element) attached() bool {
	for n := e.n; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) Tag() string { return e.n.Data }

func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

func (e *Element) SetID(id string) error { return e.SetAttr("id", id) }

func (e *Element) Attr(name string) (string, bool) {
	return attr(e.n, name)
}

// SetAttr writes an attribute. Detached elements are writable so freshly
// created nodes can be prepared before insertion.
func (e *Element) SetAttr(name, value string) error {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return nil
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

func (e *Element) RemoveAttr(name string) error {
	kept := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.n.Attr = kept
	return nil
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(name string) error {
	if e.HasClass(name) {
		return nil
	}
	return e.SetAttr("class", strings.Join(append(e.classes(), name), " "))
}

func (e *Element) RemoveClass(name string) error {
	if !e.HasClass(name) {
		return nil
	}
	kept := make([]string, 0, len(e.classes()))
	for _, c := range e.classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	return e.SetAttr("class", strings.Join(kept, " "))
}

func (e *Element) ToggleClass(name string) (bool, error) {
	if e.HasClass(name) {
		return false, e.RemoveClass(name)
	}
	return true, e.AddClass(name)
}

func (e *Element) Text() string {
	return strings.TrimSpace(htmlquery.InnerText(e.n))
}

func (e *Element) SetText(text string) error {
	e.removeChildren()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

func (e *Element) SetHighlight(match, rest, class string) error {
	e.removeChildren()
	if match != "" {
		span := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
		if class != "" {
			span.Attr = []html.Attribute{{Key: "class", Val: class}}
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: match})
		e.n.AppendChild(span)
	}
	if rest != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: rest})
	}
	return nil
}

func (e *Element) Value() string {
	v, _ := e.Attr("value")
	return v
}

func (e *Element) SetValue(value string) error {
	if !e.attached() {
		return dom.ErrDetached
	}
	return e.SetAttr("value", value)
}

func (e *Element) Parent() dom.Node {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return asNode(e.doc.wrap(p))
		}
	}
	return nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other dom.Node) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	for n := o.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

func (e *Element) Query(selector string) dom.Node {
	return asNode(e.doc.queryOne(e.n, selector))
}

func (e *Element) QueryAll(selector string) []dom.Node {
	return e.doc.queryAll(e.n, selector)
}

func (e *Element) AppendChild(child dom.Node) error {
	c, ok := child.(*Element)
	if !ok || c == nil || c.doc != e.doc {
		return errForeignNode
	}
	if c.n.Parent != nil {
		c.n.Parent.RemoveChild(c.n)
	}
	e.n.AppendChild(c.n)
	return nil
}

func (e *Element) Clear() error {
	e.removeChildren()
	return nil
}

func (e *Element) removeChildren() {
	if e.doc.active != nil && e.doc.active != e && e.Contains(e.doc.active) {
		e.doc.active = nil
	}
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

// Focus makes e the active element and fires focusin when focus moved.
func (e *Element) Focus() error {
	if !e.attached() {
		return dom.ErrDetached
	}
	if e.doc.active == e {
		return nil
	}
	e.doc.active = e
	e.doc.Dispatch(&dom.Event{Type: dom.FocusIn, Target: e})
	return nil
}

func (e *Element) ScrollIntoView() error {
	if !e.attached() {
		return dom.ErrDetached
	}
	e.doc.scrolled = e
	return nil
}

func (e *Element) Listen(typ dom.EventType, fn dom.Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[dom.EventType][]dom.Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}
