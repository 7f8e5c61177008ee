package countries

import (
	"strings"
	"testing"

	"github.com/atomicstack/pagekit/internal/dom/memdom"
	"github.com/atomicstack/pagekit/internal/testutil"
)

const container = `.custom-select[data-select-name="nationality"] .select-options`

func TestNamesIsACopy(t *testing.T) {
	a := Names()
	if len(a) != 195 {
		t.Fatalf("expected 195 countries, got %d", len(a))
	}
	if a[0] != "Afghanistan" || a[len(a)-1] != "Zimbabwe" {
		t.Fatalf("unexpected bounds %q..%q", a[0], a[len(a)-1])
	}
	a[0] = "changed"
	if Names()[0] != "Afghanistan" {
		t.Fatalf("expected Names to return a copy")
	}
}

func TestPopulateReplacesOptions(t *testing.T) {
	doc := memdom.MustParse(testutil.Page(
		testutil.Select("nationality", "Select nationality", testutil.Options("Stale")...),
	))
	n, err := Populate(doc, container, "", []string{"France", "Côte d'Ivoire"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 options written, got %d", n)
	}
	opts := doc.QueryAll(container + " .option")
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if v, _ := opts[0].Attr("data-value"); v != "" || opts[0].Text() != Placeholder {
		t.Fatalf("expected placeholder first, got %q/%q", v, opts[0].Text())
	}
	if v, _ := opts[2].Attr("data-value"); v != "Côte d'Ivoire" {
		t.Fatalf("unexpected value %q", v)
	}
	if role, _ := opts[1].Attr("role"); role != "option" {
		t.Fatalf("expected role option, got %q", role)
	}
	if doc.Query(container+` [data-value="Stale"]`) != nil {
		t.Fatalf("expected stale option removed")
	}
}

func TestPopulateMissingContainer(t *testing.T) {
	doc := memdom.MustParse(testutil.Page())
	if _, err := Populate(doc, container, "", Names()); err != ErrNoContainer {
		t.Fatalf("expected ErrNoContainer, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	list := Names()
	if got := Search(list, ""); len(got) != len(list) {
		t.Fatalf("expected full list for empty query, got %d", len(got))
	}
	got := Search(list, "zeal")
	if len(got) == 0 || got[0] != "New Zealand" {
		t.Fatalf("expected New Zealand, got %v", got)
	}
	got = Search(list, "cote")
	found := false
	for _, name := range got {
		if name == "Côte d'Ivoire" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected accent-insensitive match, got %v", got)
	}
	if got := Search(list, "qqqq"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestSearchKeepsEverySubstringMatch(t *testing.T) {
	list := Names()
	got := make(map[string]bool)
	for _, name := range Search(list, "LAND") {
		got[name] = true
	}
	for _, name := range list {
		if strings.Contains(strings.ToLower(name), "land") && !got[name] {
			t.Fatalf("expected substring match %q in results", name)
		}
	}
	if !got["Switzerland"] || !got["New Zealand"] {
		t.Fatalf("expected Switzerland and New Zealand, got %v", got)
	}
	prev := -1
	for _, name := range Search(list, "land") {
		idx := indexOf(list, name)
		if idx <= prev {
			t.Fatalf("expected list order, %q out of place", name)
		}
		prev = idx
	}
}

func indexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	return -1
}

func TestBest(t *testing.T) {
	list := []string{"Niger", "Nigeria", "Norway"}
	if idx := Best(list, "nigeria"); idx != 1 {
		t.Fatalf("expected exact match 1, got %d", idx)
	}
	if idx := Best(list, "nor"); idx != 2 {
		t.Fatalf("expected prefix match 2, got %d", idx)
	}
	if idx := Best(list, "nwy"); idx != 2 {
		t.Fatalf("expected fuzzy match 2, got %d", idx)
	}
	if idx := Best(list, ""); idx != -1 {
		t.Fatalf("expected -1 for empty query, got %d", idx)
	}
}
