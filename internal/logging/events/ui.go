package events

import "github.com/atomicstack/pagekit/internal/logging"

type UITracer struct{}

type TimerTracer struct{}

var (
	UI    = UITracer{}
	Timer = TimerTracer{}
)

func (UITracer) Key(key, target string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "target": target})
}

func (UITracer) Click(target string) {
	logging.Trace("ui.click", map[string]interface{}{"target": target})
}

func (UITracer) Tab(target string, backward bool) {
	logging.Trace("ui.tab", map[string]interface{}{"target": target, "backward": backward})
}

func (UITracer) Resize(columns, width int) {
	logging.Trace("ui.resize", map[string]interface{}{"columns": columns, "width": width})
}

func (TimerTracer) Drain(ran, pending int) {
	logging.Trace("timer.drain", map[string]interface{}{"ran": ran, "pending": pending})
}
