package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/testutil"
	"github.com/atomicstack/pagekit/internal/ui"
)

func TestBuildMountsDefaultPage(t *testing.T) {
	model, err := Build(Config{Page: page.DefaultOptions()}, clock.NewMock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := model.Page()
	if p.Menu == nil || len(p.Listboxes.Instances()) != 3 {
		t.Fatalf("expected menu and three selects, disabled: %v", p.Disabled)
	}
	if !strings.Contains(ui.NewHarness(model).View(), "Northfield College") {
		t.Fatalf("expected the brand in the view")
	}
}

func TestBuildUsesMarkupPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	markup := testutil.Page(
		testutil.Nav("One", "Two"),
		testutil.LiveRegion(),
		testutil.Select("colour", "Select colour", testutil.Options("Red", "Green")...),
	)
	if err := os.WriteFile(path, []byte(markup), 0o600); err != nil {
		t.Fatalf("write markup: %v", err)
	}
	model, err := Build(Config{MarkupPath: path, Page: page.DefaultOptions()}, clock.NewMock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := model.Page()
	if got := len(p.Menu.Items()); got != 2 {
		t.Fatalf("expected 2 menu items, got %d", got)
	}
	if p.Listboxes.Instance("colour") == nil {
		t.Fatalf("expected colour select")
	}
	if p.Populated != 0 {
		t.Fatalf("expected no nationality list on a custom page, got %d", p.Populated)
	}
}

func TestBuildMissingMarkup(t *testing.T) {
	_, err := Build(Config{MarkupPath: filepath.Join(t.TempDir(), "missing.html")}, nil)
	if err == nil || !strings.Contains(err.Error(), "read markup") {
		t.Fatalf("expected read markup error, got %v", err)
	}
}
