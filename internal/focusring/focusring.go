// Package focusring moves logical focus around an ordered set of items.
//
// Focus is never tracked here: callers pass whichever item currently holds
// host focus, so the ring cannot drift from what the user sees.
package focusring

import (
	"github.com/atomicstack/pagekit/internal/dom"
)

// Move is a requested focus movement.
type Move int

const (
	None Move = iota
	Next
	Previous
	First
	Last
)

func (m Move) String() string {
	switch m {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case First:
		return "first"
	case Last:
		return "last"
	}
	return "none"
}

// KeyMap binds DOM key names to movements.
type KeyMap map[string]Move

// Lookup returns the movement bound to key, or None.
func (k KeyMap) Lookup(key string) Move {
	if k == nil {
		return None
	}
	return k[key]
}

var (
	// MenuKeys treats PageDown/PageUp as aliases for the arrows.
	MenuKeys = KeyMap{
		dom.KeyArrowDown: Next,
		dom.KeyPageDown:  Next,
		dom.KeyArrowUp:   Previous,
		dom.KeyPageUp:    Previous,
		dom.KeyHome:      First,
		dom.KeyEnd:       Last,
	}
	// ListKeys drives option lists.
	ListKeys = KeyMap{
		dom.KeyArrowDown: Next,
		dom.KeyArrowUp:   Previous,
		dom.KeyHome:      First,
		dom.KeyEnd:       Last,
	}
)

// Target returns the index to focus among n items given the index currently
// focused (-1 when focus is outside the set). It returns -1 for an empty set
// or an unknown move. With nothing focused, Next lands on the first item and
// Previous on the last.
func Target(n, current int, move Move) int {
	if n <= 0 {
		return -1
	}
	if current < 0 || current >= n {
		switch move {
		case Next, First:
			return 0
		case Previous, Last:
			return n - 1
		}
		return -1
	}
	switch move {
	case Next:
		return (current + 1) % n
	case Previous:
		return (current - 1 + n) % n
	case First:
		return 0
	case Last:
		return n - 1
	}
	return -1
}

// Resolve computes the item to focus for key. ok is false when key is not
// bound or items is empty, in which case the caller must leave the event
// unconsumed.
func Resolve(items []dom.Node, active dom.Node, keys KeyMap, key string) (idx int, ok bool) {
	move := keys.Lookup(key)
	if move == None || len(items) == 0 {
		return -1, false
	}
	idx = Target(len(items), dom.IndexOf(items, active), move)
	return idx, idx >= 0
}

// Navigate resolves key and moves host focus to the result.
func Navigate(items []dom.Node, active dom.Node, keys KeyMap, key string) (dom.Node, bool) {
	idx, ok := Resolve(items, active, keys, key)
	if !ok {
		return nil, false
	}
	target := items[idx]
	// Focus failures leave focus where it was.
	_ = target.Focus()
	return target, true
}
