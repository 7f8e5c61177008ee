// Package memdom is an in-memory host document backed by golang.org/x/net/html.
//
// Elements are wrapped once and the wrapper is reused for the lifetime of the
// underlying *html.Node, so wrappers can be compared with ==. The document
// tracks the active element, dispatches events from the target up to the
// document, and fires focusin when focus moves. Everything runs on the
// caller's goroutine: the document is not safe for concurrent use.
package memdom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atomicstack/pagekit/internal/dom"
)

// Document implements dom.Document over a parsed HTML tree.
type Document struct {
	root      *html.Node
	wrappers  map[*html.Node]*Element
	active    *Element
	scrolled  *Element
	listeners map[dom.EventType][]dom.Listener
	width     int
}

var _ dom.Document = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return newDocument(root), nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// MustParse parses markup and panics on failure. Intended for fixtures.
func MustParse(markup string) *Document {
	doc, err := ParseString(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		wrappers:  make(map[*html.Node]*Element),
		listeners: make(map[dom.EventType][]dom.Listener),
	}
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if e, ok := d.wrappers[n]; ok {
		return e
	}
	e := &Element{doc: d, n: n}
	d.wrappers[n] = e
	return e
}

// asNode avoids handing out typed-nil interfaces.
func asNode(e *Element) dom.Node {
	if e == nil {
		return nil
	}
	return e
}

func (d *Document) wrapAll(nodes []*html.Node) []dom.Node {
	out := make([]dom.Node, 0, len(nodes))
	for _, n := range nodes {
		if e := d.wrap(n); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Body returns the <body> element.
func (d *Document) Body() dom.Node {
	return asNode(d.wrap(htmlquery.FindOne(d.root, "//body")))
}

func (d *Document) body() *Element {
	return d.wrap(htmlquery.FindOne(d.root, "//body"))
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) dom.Node {
	return asNode(d.queryOne(d.root, selector))
}

// QueryAll returns all elements matching selector in document order.
func (d *Document) QueryAll(selector string) []dom.Node {
	return d.queryAll(d.root, selector)
}

func (d *Document) queryOne(ctx *html.Node, selector string) *Element {
	expr, err := compileSelector(selector)
	if err != nil {
		return nil
	}
	n, err := htmlquery.Query(ctx, expr)
	if err != nil || n == nil {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) queryAll(ctx *html.Node, selector string) []dom.Node {
	expr, err := compileSelector(selector)
	if err != nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(ctx, expr)
	if err != nil {
		return nil
	}
	return d.wrapAll(nodes)
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) dom.Node {
	if id == "" || strings.ContainsRune(id, '\'') {
		return nil
	}
	n, err := htmlquery.Query(d.root, fmt.Sprintf("//*[@id='%s']", id))
	if err != nil || n == nil {
		return nil
	}
	return asNode(d.wrap(n))
}

// ActiveElement returns the focused element or nil when focus rests on the
// body.
func (d *Document) ActiveElement() dom.Node {
	if d.active != nil && !d.active.attached() {
		d.active = nil
	}
	return asNode(d.active)
}

// ScrolledTo returns the element most recently scrolled into view.
func (d *Document) ScrolledTo() dom.Node {
	return asNode(d.scrolled)
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Node {
	tag = strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	return d.wrap(n)
}

// Listen registers a document-level listener. Document listeners run after
// every element on the propagation path.
func (d *Document) Listen(typ dom.EventType, fn dom.Listener) {
	if fn == nil {
		return
	}
	d.listeners[typ] = append(d.listeners[typ], fn)
}

// Width returns the last viewport width reported through Resize.
func (d *Document) Width() int {
	return d.width
}

// Blur returns focus to the body without firing events.
func (d *Document) Blur() {
	d.active = nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the rendered document.
func (d *Document) HTML() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Tabbables returns the elements reachable through sequential keyboard
// navigation in document order. skip can exclude subtrees the host is not
// currently showing.
func (d *Document) Tabbables(skip func(dom.Node) bool) []dom.Node {
	var out []dom.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			e := d.wrap(c)
			if skip != nil && skip(e) {
				continue
			}
			if tabbable(c) {
				out = append(out, e)
			}
			walk(c)
		}
	}
	walk(d.root)
	return out
}

func tabbable(n *html.Node) bool {
	if v, ok := attr(n, "tabindex"); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil && idx >= 0
	}
	switch n.DataAtom {
	case atom.A:
		_, ok := attr(n, "href")
		return ok
	case atom.Button, atom.Select, atom.Textarea:
		return true
	case atom.Input:
		t, _ := attr(n, "type")
		return !strings.EqualFold(t, "hidden")
	}
	return false
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
