// Package dom describes the host document the widget controllers operate on.
//
// Controllers never touch a concrete UI toolkit. They see a tree of
// focusable, attributable nodes that can be queried with a small CSS subset
// (tag, .class, #id, [attr], [attr="value"] and the descendant combinator)
// and that deliver click, key, focus and resize events. The memdom package
// provides an in-memory implementation; jsdom binds the browser DOM.
package dom

import "errors"

// ErrDetached reports a write against a node that is no longer part of the
// document.
var ErrDetached = errors.New("dom: node detached from document")

// Node is a single element of the host document.
type Node interface {
	Tag() string
	ID() string
	SetID(id string) error

	Attr(name string) (string, bool)
	SetAttr(name, value string) error
	RemoveAttr(name string) error

	HasClass(name string) bool
	AddClass(name string) error
	RemoveClass(name string) error
	// ToggleClass flips the class and reports whether it is now present.
	ToggleClass(name string) (bool, error)

	// Text returns the trimmed text content of the node and its descendants.
	Text() string
	SetText(text string) error
	// SetHighlight replaces the node's content with match wrapped in a span
	// carrying class, followed by rest as plain text.
	SetHighlight(match, rest, class string) error

	// Value and SetValue address form values (hidden inputs).
	Value() string
	SetValue(value string) error

	Parent() Node
	Contains(other Node) bool
	Query(selector string) Node
	QueryAll(selector string) []Node
	AppendChild(child Node) error
	Clear() error

	Focus() error
	ScrollIntoView() error

	Listen(typ EventType, fn Listener)
}

// Document is the root of the host tree. Listeners registered on the
// document also receive window-level events such as resize.
type Document interface {
	Body() Node
	Query(selector string) Node
	QueryAll(selector string) []Node
	ByID(id string) Node
	ActiveElement() Node
	CreateElement(tag string) Node
	Listen(typ EventType, fn Listener)
}

// Same reports whether two nodes refer to the same element. Nil interfaces
// never compare equal to a live node.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// IndexOf returns the position of n within nodes or -1.
func IndexOf(nodes []Node, n Node) int {
	if n == nil {
		return -1
	}
	for i, candidate := range nodes {
		if Same(candidate, n) {
			return i
		}
	}
	return -1
}
