package events

import "github.com/atomicstack/pagekit/internal/logging"

type MenuTracer struct{}

type MenuReason string

const (
	MenuReasonToggle  MenuReason = "toggle"
	MenuReasonOutside MenuReason = "outside"
	MenuReasonEscape  MenuReason = "escape"
	MenuReasonResize  MenuReason = "resize"
)

var Menu = MenuTracer{}

func (MenuTracer) Disabled(missing []string) {
	logging.Trace("menu.disabled", map[string]interface{}{"missing": missing})
}

func (MenuTracer) Open(items int) {
	logging.Trace("menu.open", map[string]interface{}{"items": items})
}

func (MenuTracer) Close(reason MenuReason) {
	logging.Trace("menu.close", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Cursor(key string, index int, label string) {
	logging.Trace("menu.cursor", map[string]interface{}{"key": key, "index": index, "label": label})
}
