package focusring

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/dom/memdom"
)

const ring = `<html><body>
<button id="outside">x</button>
<ul><li><a id="a" tabindex="0">A</a></li><li><a id="b" tabindex="0">B</a></li><li><a id="c" tabindex="0">C</a></li></ul>
</body></html>`

func items(t *testing.T) (*memdom.Document, []dom.Node) {
	t.Helper()
	doc := memdom.MustParse(ring)
	nodes := doc.QueryAll("ul a")
	if len(nodes) != 3 {
		t.Fatalf("expected 3 items, got %d", len(nodes))
	}
	return doc, nodes
}

func TestTargetWraparound(t *testing.T) {
	cases := []struct {
		current int
		move    Move
		want    int
	}{
		{2, Next, 0},
		{0, Previous, 2},
		{1, Next, 2},
		{1, Previous, 0},
		{1, First, 0},
		{1, Last, 2},
		{-1, Next, 0},
		{-1, Previous, 2},
		{-1, First, 0},
		{-1, Last, 2},
		{1, None, -1},
	}
	for _, tc := range cases {
		if got := Target(3, tc.current, tc.move); got != tc.want {
			t.Fatalf("Target(3, %d, %s): expected %d, got %d", tc.current, tc.move, tc.want, got)
		}
	}
	if got := Target(0, -1, Next); got != -1 {
		t.Fatalf("expected -1 for empty set, got %d", got)
	}
}

func TestNavigateMovesHostFocus(t *testing.T) {
	doc, nodes := items(t)
	if err := nodes[2].Focus(); err != nil {
		t.Fatalf("focus: %v", err)
	}
	got, ok := Navigate(nodes, doc.ActiveElement(), MenuKeys, dom.KeyArrowDown)
	if !ok || got.ID() != "a" {
		t.Fatalf("expected wrap to a, got %v ok=%v", got, ok)
	}
	if doc.ActiveElement().ID() != "a" {
		t.Fatalf("expected host focus on a, got %s", doc.ActiveElement().ID())
	}
	got, _ = Navigate(nodes, doc.ActiveElement(), MenuKeys, dom.KeyPageUp)
	if got.ID() != "c" {
		t.Fatalf("expected PageUp to wrap back to c, got %s", got.ID())
	}
}

func TestNavigateDirectionalEntry(t *testing.T) {
	doc, nodes := items(t)
	_ = doc.ByID("outside").Focus()
	got, _ := Navigate(nodes, doc.ActiveElement(), MenuKeys, dom.KeyArrowUp)
	if got.ID() != "c" {
		t.Fatalf("expected entry from outside on last item, got %s", got.ID())
	}
	_ = doc.ByID("outside").Focus()
	got, _ = Navigate(nodes, doc.ActiveElement(), MenuKeys, dom.KeyPageDown)
	if got.ID() != "a" {
		t.Fatalf("expected entry from outside on first item, got %s", got.ID())
	}
}

func TestNavigateIgnoresUnknownKeysAndEmptySets(t *testing.T) {
	doc, nodes := items(t)
	_ = nodes[1].Focus()
	if _, ok := Navigate(nodes, doc.ActiveElement(), MenuKeys, "x"); ok {
		t.Fatalf("expected unknown key to be unconsumed")
	}
	if doc.ActiveElement().ID() != "b" {
		t.Fatalf("expected focus unchanged, got %s", doc.ActiveElement().ID())
	}
	if _, ok := Navigate(nil, doc.ActiveElement(), MenuKeys, dom.KeyArrowDown); ok {
		t.Fatalf("expected empty set to be a no-op")
	}
	if _, ok := Resolve(nodes, nil, ListKeys, dom.KeyPageDown); ok {
		t.Fatalf("expected PageDown to be unbound for option lists")
	}
}

func TestTypeAheadWindow(t *testing.T) {
	mock := clock.NewMock()
	ta := NewTypeAhead(mock, 0)
	labels := []string{"Albania", "Algeria", "Andorra"}

	ta.Push('A')
	mock.Add(100 * time.Millisecond)
	if buf := ta.Push('l'); buf != "al" {
		t.Fatalf("expected buffer al, got %q", buf)
	}
	if idx := MatchPrefix(labels, ta.Buffer()); idx != 0 {
		t.Fatalf("expected Albania for al, got %d", idx)
	}
	mock.Add(100 * time.Millisecond)
	if buf := ta.Push('a'); buf != "ala" {
		t.Fatalf("expected buffer ala, got %q", buf)
	}
	if idx := MatchPrefix(labels, ta.Buffer()); idx != -1 {
		t.Fatalf("expected no match for ala, got %d", idx)
	}

	mock.Add(600 * time.Millisecond)
	if buf := ta.Push('a'); buf != "a" {
		t.Fatalf("expected buffer restarted to a, got %q", buf)
	}
	if idx := MatchPrefix(labels, ta.Buffer()); idx != 0 {
		t.Fatalf("expected Albania for a, got %d", idx)
	}
}

func TestTypeAheadWindowBoundaryKeepsBuffer(t *testing.T) {
	mock := clock.NewMock()
	ta := NewTypeAhead(mock, 500*time.Millisecond)
	ta.Push('a')
	mock.Add(500 * time.Millisecond)
	if buf := ta.Push('n'); buf != "an" {
		t.Fatalf("expected buffer kept at exactly the window, got %q", buf)
	}
	ta.Reset()
	if buf := ta.Push('z'); buf != "z" {
		t.Fatalf("expected reset buffer, got %q", buf)
	}
}

func TestTypeAheadRune(t *testing.T) {
	for _, key := range []string{"a", "Z", "7", "é"} {
		if _, ok := TypeAheadRune(key); !ok {
			t.Fatalf("expected %q to feed type-ahead", key)
		}
	}
	for _, key := range []string{"", " ", "-", "ArrowDown", "ab"} {
		if _, ok := TypeAheadRune(key); ok {
			t.Fatalf("expected %q to be ignored", key)
		}
	}
}

func TestSplitMatchPreservesCase(t *testing.T) {
	match, rest := SplitMatch("  Côte d'Ivoire ", "cô")
	if match != "Cô" || rest != "te d'Ivoire" {
		t.Fatalf("expected Cô|te d'Ivoire, got %q|%q", match, rest)
	}
	match, rest = SplitMatch("France", "ge")
	if match != "" || rest != "France" {
		t.Fatalf("expected no split on mismatch, got %q|%q", match, rest)
	}
}
