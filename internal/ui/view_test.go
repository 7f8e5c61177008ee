package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestViewRendersPage(t *testing.T) {
	h, _ := newTestHarness(t, Options{ShowFooter: true})
	view := plainView(h)
	for _, want := range []string{
		"Northfield College",
		"[☰ Menu]",
		"Apply now",
		"Nationality [ Select nationality ▾ ]",
		"Programme   [ Select programme ▾ ]",
		"[ Submit application ]",
		"tab next",
		"ctrl+c quit",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Home") {
		t.Fatalf("expected closed menu items hidden at mobile width, got:\n%s", view)
	}
}

func TestViewShowsOpenMenuAndLiveRegion(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	p := h.Model().Page()
	h.Click(p.Menu.ToggleNode())
	h.Settle()
	view := plainView(h)
	for _, want := range []string{"[✕ Menu]", "› Home", "  Contact", "» Home. 1 of 4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewHighlightsTypeAheadMatch(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	prog := h.Model().Page().Listboxes.Instance("programme")
	h.Click(prog.Trigger())
	h.Type(typed("en")...)
	if got := activeText(h); got != "Engineering" {
		t.Fatalf("expected Engineering, got %q", got)
	}
	raw := h.View()
	if !strings.Contains(raw, styles.Match.Render("En")) {
		t.Fatalf("expected styled match prefix, got:\n%s", raw)
	}
	if view := ansi.Strip(raw); !strings.Contains(view, "› Engineering") {
		t.Fatalf("expected full label after the prefix, got:\n%s", view)
	}
}

func TestLongListKeepsFocusedOptionVisible(t *testing.T) {
	h, _ := newTestHarness(t, Options{Height: 24})
	nat := h.Model().Page().Listboxes.Instance("nationality")
	h.Click(nat.Trigger())
	view := plainView(h)
	if !strings.Contains(view, "↓ 188 more") || strings.Contains(view, "Zimbabwe") {
		t.Fatalf("expected the top of the list, got:\n%s", view)
	}

	h.Send(keyPress(tea.KeyEnd))
	view = plainView(h)
	if !strings.Contains(view, "› Zimbabwe") || !strings.Contains(view, "↑ 188 more") {
		t.Fatalf("expected the list scrolled to the end, got:\n%s", view)
	}
	if strings.Contains(view, "Afghanistan") {
		t.Fatalf("expected the top of the list scrolled away, got:\n%s", view)
	}

	h.Send(keyPress(tea.KeyHome))
	if view = plainView(h); !strings.Contains(view, "↓ 188 more") {
		t.Fatalf("expected the list scrolled back, got:\n%s", view)
	}
}

func TestViewRespectsWidthAndHeight(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 20, Height: 3})
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("expected at most 20 columns, got %d in %q", w, ansi.Strip(line))
		}
	}
	if got := ansi.Strip(lines[2]); got != "…" {
		t.Fatalf("expected ellipsis on the last line, got %q", got)
	}
}

func TestNodeAtMatchesRenderedColumns(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	p := h.Model().Page()
	h.View()
	row := h.Model().rows[0]
	if len(row) < 2 {
		t.Fatalf("expected brand and toggle hits on the nav row, got %d", len(row))
	}
	toggle := row[len(row)-1]
	if got := h.Model().nodeAt(toggle.from, 0); got != p.Menu.ToggleNode() {
		t.Fatalf("expected toggle at column %d", toggle.from)
	}
	if got := h.Model().nodeAt(toggle.to, 0); got != nil {
		t.Fatalf("expected nothing past the toggle, got %v", got)
	}
	if got := h.Model().nodeAt(0, 99); got != nil {
		t.Fatalf("expected nothing below the view")
	}
}
