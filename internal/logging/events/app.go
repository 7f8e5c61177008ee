package events

import "github.com/atomicstack/pagekit/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mount(menu bool, listboxes int) {
	logging.Trace("app.mount", map[string]interface{}{"menu": menu, "listboxes": listboxes})
}
