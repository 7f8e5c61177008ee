package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// Step is one entry of a key script: a key press, a pause, or a terminal
// resize.
type Step struct {
	Key     tea.KeyPressMsg
	Wait    time.Duration
	Columns int
}

// ParseScript reads a key script. Text outside angle brackets is typed
// literally; bracketed tokens name keys (<Tab>, <S-Tab>, <CR>, <Esc>,
// <Space>, <Up>, <Down>, <Home>, <End>, <PageUp>, <PageDown>, <C-c>), pauses
// (<wait:600ms>) or resizes (<cols:120>). A "<" with no closing ">" is
// literal.
func ParseScript(script string) ([]Step, error) {
	var steps []Step
	remaining := script
	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			steps = append(steps, literal(remaining)...)
			break
		}
		steps = append(steps, literal(remaining[:start])...)
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			steps = append(steps, literal(remaining[start:])...)
			break
		}
		token := remaining[start+1 : start+end]
		step, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		remaining = remaining[start+end+1:]
	}
	return steps, nil
}

func literal(text string) []Step {
	steps := make([]Step, 0, len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' {
			continue
		}
		steps = append(steps, Step{Key: tea.KeyPressMsg{Code: r, Text: string(r)}})
	}
	return steps
}

func parseToken(token string) (Step, error) {
	lower := strings.ToLower(strings.TrimSpace(token))
	if name, arg, ok := strings.Cut(lower, ":"); ok {
		switch name {
		case "wait":
			d, err := time.ParseDuration(arg)
			if err != nil || d <= 0 {
				return Step{}, fmt.Errorf("invalid wait %q", token)
			}
			return Step{Wait: d}, nil
		case "cols":
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return Step{}, fmt.Errorf("invalid cols %q", token)
			}
			return Step{Columns: n}, nil
		}
		return Step{}, fmt.Errorf("unknown key token <%s>", token)
	}
	var k tea.KeyPressMsg
	switch lower {
	case "esc", "escape", "c-[":
		k = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "cr", "enter", "return":
		k = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		k = tea.KeyPressMsg{Code: tea.KeyTab}
	case "s-tab":
		k = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "space":
		k = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		k = tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		k = tea.KeyPressMsg{Code: tea.KeyDown}
	case "home":
		k = tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		k = tea.KeyPressMsg{Code: tea.KeyEnd}
	case "pageup", "pgup":
		k = tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pagedown", "pgdn":
		k = tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "c-c":
		k = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		return Step{}, fmt.Errorf("unknown key token <%s>", token)
	}
	return Step{Key: k}, nil
}
