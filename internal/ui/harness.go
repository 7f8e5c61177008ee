package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/schedule"
)

// settleLimit bounds Settle against tasks that keep rescheduling themselves.
const settleLimit = 1000

// Harness drives the UI model programmatically for integration tests and the
// render command. Ticks are disabled: time only moves through Advance.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.tick = nil
	}
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.processCmd(c)
			}
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Type sends each key in turn.
func (h *Harness) Type(keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		h.Send(k)
	}
}

// Click sends a left click on the first cell where n was drawn by the last
// render. It reports false when n is not on screen.
func (h *Harness) Click(n dom.Node) bool {
	if h.model == nil {
		return false
	}
	h.View()
	for y, row := range h.model.rows {
		for _, hit := range row {
			if dom.Same(hit.node, n) {
				h.Send(tea.MouseClickMsg{X: hit.from, Y: y, Button: tea.MouseLeft})
				return true
			}
		}
	}
	return false
}

// Advance moves time forward by d and runs the tasks that fall due. With a
// mock clock time moves instantly; otherwise the harness waits.
func (h *Harness) Advance(d time.Duration) {
	if h.model == nil {
		return
	}
	if mock, ok := h.model.clock.(*clock.Mock); ok {
		schedule.Advance(mock, h.model.queue, d)
		return
	}
	time.Sleep(d)
	h.model.drain()
}

// Settle advances time until no task is pending.
func (h *Harness) Settle() {
	if h.model == nil {
		return
	}
	for i := 0; i < settleLimit; i++ {
		wait, ok := h.model.queue.Next()
		if !ok {
			return
		}
		h.Advance(wait)
	}
}

// Run plays a parsed key script.
func (h *Harness) Run(steps []Step) {
	for _, step := range steps {
		switch {
		case step.Wait > 0:
			h.Advance(step.Wait)
		case step.Columns > 0:
			h.Send(tea.WindowSizeMsg{Width: step.Columns, Height: h.model.height})
		default:
			h.Send(step.Key)
		}
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.render()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
