package ui

import (
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/pagekit/internal/dom"
)

type keyMap struct {
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "activate"),
		),
	}
}

// domKey translates a terminal key press into a DOM key name plus modifier
// state. Keys the page has no name for report ok=false.
func domKey(msg tea.KeyPressMsg) (ev dom.Event, ok bool) {
	k := msg.Key()
	ev = dom.Event{
		Ctrl:  k.Mod&tea.ModCtrl != 0,
		Alt:   k.Mod&tea.ModAlt != 0,
		Meta:  k.Mod&tea.ModMeta != 0,
		Shift: k.Mod&tea.ModShift != 0,
	}
	switch k.Code {
	case tea.KeyUp:
		ev.Key = dom.KeyArrowUp
	case tea.KeyDown:
		ev.Key = dom.KeyArrowDown
	case tea.KeyHome:
		ev.Key = dom.KeyHome
	case tea.KeyEnd:
		ev.Key = dom.KeyEnd
	case tea.KeyPgUp:
		ev.Key = dom.KeyPageUp
	case tea.KeyPgDown:
		ev.Key = dom.KeyPageDown
	case tea.KeyEscape:
		ev.Key = dom.KeyEscape
	case tea.KeyEnter:
		ev.Key = dom.KeyEnter
	case tea.KeyTab:
		ev.Key = dom.KeyTab
	case tea.KeySpace:
		ev.Key = dom.KeySpace
	default:
		text := k.Text
		if text == "" && k.Code >= 0x20 && unicode.IsPrint(k.Code) {
			text = string(k.Code)
		}
		runes := []rune(text)
		if len(runes) != 1 || !unicode.IsPrint(runes[0]) {
			return dom.Event{}, false
		}
		ev.Key = text
	}
	return ev, true
}
