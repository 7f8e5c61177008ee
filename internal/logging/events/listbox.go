package events

import "github.com/atomicstack/pagekit/internal/logging"

type ListboxTracer struct{}

type ListboxReason string

const (
	ListboxReasonToggle  ListboxReason = "toggle"
	ListboxReasonOutside ListboxReason = "outside"
	ListboxReasonEscape  ListboxReason = "escape"
	ListboxReasonCommit  ListboxReason = "commit"
	ListboxReasonOther   ListboxReason = "exclusive"
)

var Listbox = ListboxTracer{}

func (ListboxTracer) Skip(index int, missing string) {
	logging.Trace("listbox.skip", map[string]interface{}{"index": index, "missing": missing})
}

func (ListboxTracer) Open(name string, focus int) {
	logging.Trace("listbox.open", map[string]interface{}{"name": name, "focus": focus})
}

func (ListboxTracer) Close(name string, reason ListboxReason) {
	logging.Trace("listbox.close", map[string]interface{}{"name": name, "reason": string(reason)})
}

func (ListboxTracer) Cursor(name, key string, index int) {
	logging.Trace("listbox.cursor", map[string]interface{}{"name": name, "key": key, "index": index})
}

func (ListboxTracer) TypeAhead(name, buffer string, index int) {
	logging.Trace("listbox.typeahead", map[string]interface{}{"name": name, "buffer": buffer, "index": index})
}

func (ListboxTracer) Commit(name, value, label string) {
	logging.Trace("listbox.commit", map[string]interface{}{"name": name, "value": value, "label": label})
}
