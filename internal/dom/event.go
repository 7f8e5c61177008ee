package dom

// EventType names an event delivered by the host.
type EventType string

const (
	Click   EventType = "click"
	KeyDown EventType = "keydown"
	KeyUp   EventType = "keyup"
	FocusIn EventType = "focusin"
	Resize  EventType = "resize"
)

// Key names follow the DOM KeyboardEvent.key values.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyPageDown  = "PageDown"
	KeyPageUp    = "PageUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyEnter     = "Enter"
	KeySpace     = " "
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
)

// Event is a single dispatched event. Hosts create one per dispatch and walk
// it from the target up to the document.
type Event struct {
	Type   EventType
	Target Node
	Key    string
	Ctrl   bool
	Alt    bool
	Meta   bool
	Shift  bool
	// Width is the viewport width in logical pixels for resize events.
	Width int

	stopped   bool
	prevented bool
}

// Listener handles a dispatched event.
type Listener func(*Event)

// StopPropagation prevents the event from reaching further ancestors or the
// document once the current node's listeners have run.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// PreventDefault marks the event as consumed so the host skips its default
// behaviour.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// HasModifier reports whether a command modifier is held. Shift does not
// count since it only changes the character produced.
func (e *Event) HasModifier() bool {
	return e.Ctrl || e.Alt || e.Meta
}
