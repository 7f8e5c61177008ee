package events

import "github.com/atomicstack/pagekit/internal/logging"

type AnnounceTracer struct{}

var Announce = AnnounceTracer{}

func (AnnounceTracer) Say(text string) {
	logging.Trace("announce.say", map[string]interface{}{"text": text})
}

func (AnnounceTracer) Write(text string) {
	logging.Trace("announce.write", map[string]interface{}{"text": text})
}
