// Package widget holds the environment shared by the interactive controllers.
package widget

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/go-logr/logr"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/schedule"
)

// Env is handed to every controller mounted on a document. All controllers
// of one page share the same Env and therefore the same event loop.
type Env struct {
	Doc       dom.Document
	Scheduler schedule.Scheduler
	Clock     clock.Clock
	Log       logr.Logger
}

// WithDefaults fills in a wall clock, a discarding logger and, when no
// scheduler is set, a Queue on the env clock.
func (e Env) WithDefaults() Env {
	if e.Clock == nil {
		e.Clock = clock.New()
	}
	if e.Log.GetSink() == nil {
		e.Log = logr.Discard()
	}
	if e.Scheduler == nil {
		e.Scheduler = schedule.NewQueue(e.Clock)
	}
	return e
}

// Guard discards a host write error after logging it. Host failures such as a
// node detached mid-operation never surface to the user.
func (e Env) Guard(op string, err error) {
	if err == nil {
		return
	}
	e.Log.V(1).Info("host write ignored", "op", op, "error", err.Error())
}

// MissingError reports the required elements a controller could not find.
// A controller returning it has installed no listeners.
type MissingError struct {
	Component string
	Elements  []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s disabled: missing %s", e.Component, strings.Join(e.Elements, ", "))
}
