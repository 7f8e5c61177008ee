// Package announce writes short notifications to an assistive-technology
// live region.
package announce

import (
	"time"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/logging/events"
	"github.com/atomicstack/pagekit/internal/widget"
)

// DefaultDelay separates clearing the live region from writing the new text.
const DefaultDelay = 60 * time.Millisecond

// Announcer serializes announcements to a single live region. Screen readers
// skip identical consecutive text, so every announcement first empties the
// region and writes the text after a delay.
type Announcer struct {
	env    widget.Env
	region dom.Node
	delay  time.Duration
}

// New returns an announcer writing to region. A nil region yields an
// announcer whose calls are no-ops.
func New(env widget.Env, region dom.Node, delay time.Duration) *Announcer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Announcer{env: env.WithDefaults(), region: region, delay: delay}
}

// Region returns the live region node, or nil.
func (a *Announcer) Region() dom.Node {
	if a == nil {
		return nil
	}
	return a.region
}

// Announce clears the live region now and writes text after the delay.
// Overlapping calls are not cancelled; the last scheduled write wins.
func (a *Announcer) Announce(text string) {
	if a == nil || a.region == nil {
		return
	}
	events.Announce.Say(text)
	a.env.Guard("announce.clear", a.region.SetText(""))
	region := a.region
	a.env.Scheduler.After(a.delay, func() {
		events.Announce.Write(text)
		a.env.Guard("announce.write", region.SetText(text))
	})
}
