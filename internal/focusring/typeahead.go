package focusring

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom"
)

// DefaultWindow is the longest pause between keystrokes that still extends
// the type-ahead buffer.
const DefaultWindow = 500 * time.Millisecond

// TypeAhead accumulates typed characters into a lowercase search prefix.
// A single buffer is shared by every option list on a page since only one
// list can be open at a time.
type TypeAhead struct {
	clock  clock.Clock
	window time.Duration
	buffer string
	last   time.Time
	typed  bool
}

// NewTypeAhead returns a buffer timed by c.
func NewTypeAhead(c clock.Clock, window time.Duration) *TypeAhead {
	if c == nil {
		c = clock.New()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &TypeAhead{clock: c, window: window}
}

// Push appends r to the buffer, restarting it when more than the window has
// elapsed since the previous keystroke, and returns the buffer.
func (t *TypeAhead) Push(r rune) string {
	now := t.clock.Now()
	if !t.typed || now.Sub(t.last) > t.window {
		t.buffer = ""
	}
	t.buffer += string(unicode.ToLower(r))
	t.last = now
	t.typed = true
	return t.buffer
}

// Buffer returns the current prefix.
func (t *TypeAhead) Buffer() string { return t.buffer }

// Reset empties the buffer.
func (t *TypeAhead) Reset() {
	t.buffer = ""
	t.typed = false
}

// TypeAheadRune reports whether key is a single letter or digit that should
// feed the buffer.
func TypeAheadRune(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0, false
	}
	return r, true
}

// MatchPrefix returns the index of the first label starting with prefix,
// compared case-insensitively, or -1.
func MatchPrefix(labels []string, prefix string) int {
	if prefix == "" {
		return -1
	}
	prefix = strings.ToLower(prefix)
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), prefix) {
			return i
		}
	}
	return -1
}

// Labels collects the text of each item.
func Labels(items []dom.Node) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Text()
	}
	return out
}

// SplitMatch splits label into the part matching prefix and the remainder.
// Case is preserved from the label. When label does not start with prefix,
// match is empty and rest is the whole label.
func SplitMatch(label, prefix string) (match, rest string) {
	label = strings.TrimSpace(label)
	if prefix == "" {
		return "", label
	}
	lowered := strings.ToLower(label)
	if !strings.HasPrefix(lowered, strings.ToLower(prefix)) {
		return "", label
	}
	n := utf8.RuneCountInString(prefix)
	runes := []rune(label)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]), string(runes[n:])
}
