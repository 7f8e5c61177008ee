package listbox

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/testutil"
)

func mountSelects(t *testing.T, parts ...string) (*testutil.Fixture, *Controller) {
	t.Helper()
	fx := testutil.NewFixture(t, testutil.Page(parts...))
	return fx, Mount(fx.Env, DefaultOptions())
}

func attr(n dom.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func openCount(c *Controller) int {
	n := 0
	for _, inst := range c.Instances() {
		if inst.IsOpen() {
			n++
		}
	}
	return n
}

func TestMountInitializesOptionsAndTrigger(t *testing.T) {
	_, c := mountSelects(t,
		testutil.Select("programme", "Choose", testutil.Option{Value: "cs", Label: "Computing"},
			testutil.Option{Value: "law", Label: "Law", Selected: true}),
	)
	inst := c.Instance("programme")
	require.NotNil(t, inst)
	assert.Equal(t, "false", attr(inst.Trigger(), "aria-expanded"))
	controls := attr(inst.Trigger(), "aria-controls")
	assert.True(t, strings.HasPrefix(controls, "listbox-"), "generated aria-controls id, got %q", controls)
	assert.Equal(t, controls, inst.Root().Query(".select-options").ID())

	opts := inst.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "-1", attr(opts[0], "tabindex"))
	assert.Equal(t, "0", attr(opts[1], "tabindex"))
}

func TestMountSkipsIncompleteContainers(t *testing.T) {
	_, c := mountSelects(t,
		`<div class="custom-select" data-select-name="broken"><button class="select-trigger">x</button></div>`,
		testutil.Select("intake", "Choose", testutil.Options("September", "January")...),
	)
	require.Len(t, c.Instances(), 1)
	assert.Equal(t, "intake", c.Instances()[0].Name())
	require.Len(t, c.Skipped(), 1)
	assert.Equal(t, []string{`input[type="hidden"]`}, c.Skipped()[0].Elements)
}

func TestOpenFocusesSelectedOrFirst(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("a", "Choose", testutil.Options("One", "Two", "Three")...),
		testutil.Select("b", "Choose", testutil.Option{Value: "1", Label: "One"},
			testutil.Option{Value: "2", Label: "Two", Selected: true}),
	)
	a, b := c.Instance("a"), c.Instance("b")

	fx.Doc.Click(a.Trigger())
	require.True(t, a.IsOpen())
	assert.Equal(t, "true", attr(a.Trigger(), "aria-expanded"))
	assert.True(t, a.Root().HasClass("open"))
	assert.Equal(t, "One", fx.Doc.ActiveElement().Text())

	fx.Doc.Click(b.Trigger())
	require.True(t, b.IsOpen())
	assert.False(t, a.IsOpen(), "opening b closes a")
	assert.Equal(t, "false", attr(a.Trigger(), "aria-expanded"))
	assert.Equal(t, "Two", fx.Doc.ActiveElement().Text())
	for _, o := range b.Options() {
		want := "-1"
		if o.Text() == "Two" {
			want = "0"
		}
		assert.Equal(t, want, attr(o, "tabindex"), o.Text())
	}
}

func TestExclusivityAcrossSequences(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("a", "A", testutil.Options("One", "Two")...),
		testutil.Select("b", "B", testutil.Options("One", "Two")...),
		testutil.Select("c", "C", testutil.Options("One", "Two")...),
	)
	steps := []func(){
		func() { fx.Doc.Click(c.Instance("a").Trigger()) },
		func() { fx.Doc.Click(c.Instance("b").Trigger()) },
		func() { fx.Doc.Click(c.Instance("b").Trigger()) },
		func() { c.Instance("c").Open() },
		func() { c.Instance("a").Toggle() },
		func() { fx.Doc.KeyDown(dom.KeyEnter) },
		func() { fx.Doc.Click(c.Instance("c").Trigger()) },
		func() { fx.Doc.Click(fx.Doc.ByID("outside")) },
	}
	for i, step := range steps {
		step()
		assert.LessOrEqual(t, openCount(c), 1, "after step %d", i)
	}
	assert.Equal(t, 0, openCount(c))
}

func TestCommitFrance(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("nationality", "Select nationality", testutil.Options("Finland", "France", "Gabon")...),
	)
	inst := c.Instance("nationality")
	inst.Open()
	opts := inst.Options()
	fx.Doc.Click(opts[1])

	assert.Equal(t, "France", inst.Value())
	assert.Equal(t, "France", inst.Label())
	assert.False(t, inst.IsOpen())
	assert.False(t, inst.Root().HasClass("open"))
	assert.True(t, dom.Same(fx.Doc.ActiveElement(), inst.Trigger()))
	selected := 0
	for _, o := range inst.Options() {
		if attr(o, "aria-selected") == "true" {
			selected++
			assert.Equal(t, "France", o.Text())
		}
	}
	assert.Equal(t, 1, selected)

	inst.Open()
	assert.Equal(t, "France", fx.Doc.ActiveElement().Text(), "reopening focuses the committed option")
}

func TestCommitPlaceholderClearsValue(t *testing.T) {
	_, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Option{Value: "", Label: "Select nationality"},
			testutil.Option{Value: "Peru", Label: "Peru"}),
	)
	inst := c.Instance("n")
	inst.Select(inst.Options()[1])
	require.Equal(t, "Peru", inst.Value())
	inst.Select(inst.Options()[0])
	assert.Equal(t, "", inst.Value())
	assert.Equal(t, "Select nationality", inst.Label())
}

func TestKeyboardNavigationWrapsAndCommits(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("One", "Two", "Three")...),
	)
	inst := c.Instance("n")
	_ = inst.Trigger().Focus()
	ev := fx.Doc.KeyDown(dom.KeyEnter)
	require.True(t, inst.IsOpen(), "Enter on the trigger opens")
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, "One", fx.Doc.ActiveElement().Text())

	fx.Doc.KeyDown(dom.KeyArrowUp)
	assert.Equal(t, "Three", fx.Doc.ActiveElement().Text())
	fx.Doc.KeyDown(dom.KeyArrowDown)
	assert.Equal(t, "One", fx.Doc.ActiveElement().Text())
	fx.Doc.KeyDown(dom.KeyEnd)
	assert.Equal(t, "Three", fx.Doc.ActiveElement().Text())

	marked := 0
	for _, o := range inst.Options() {
		if attr(o, "tabindex") == "0" {
			marked++
			assert.True(t, dom.Same(o, fx.Doc.ActiveElement()))
		}
	}
	assert.Equal(t, 1, marked)

	ev = fx.Doc.KeyDown("Tab")
	assert.False(t, ev.DefaultPrevented(), "unhandled keys are not consumed")

	fx.Doc.KeyDown(dom.KeySpace)
	assert.False(t, inst.IsOpen())
	assert.Equal(t, "Three", inst.Value())
}

func TestEnterWithoutFocusedOptionCommitsFirst(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("One", "Two")...),
	)
	inst := c.Instance("n")
	inst.Open()
	_ = fx.Doc.ByID("outside").SetAttr("tabindex", "0")
	_ = fx.Doc.ByID("outside").Focus()
	fx.Doc.KeyDown(dom.KeyEnter)
	assert.Equal(t, "One", inst.Value())
}

func TestTypeAheadHighlightsAndResets(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("Albania", "Algeria", "Andorra")...),
	)
	inst := c.Instance("n")
	inst.Open()
	opts := inst.Options()

	fx.Doc.KeyDown("a")
	fx.Clock.Add(100 * time.Millisecond)
	fx.Doc.KeyDown("l")
	assert.Equal(t, "al", c.TypeAheadBuffer())
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text())
	match := opts[0].Query(".match")
	require.NotNil(t, match, "expected highlight span")
	assert.Equal(t, "Al", match.Text())

	fx.Clock.Add(100 * time.Millisecond)
	fx.Doc.KeyDown("a")
	assert.Equal(t, "ala", c.TypeAheadBuffer())
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text(), "no match leaves focus unchanged")

	fx.Clock.Add(100 * time.Millisecond)
	fx.Doc.KeyDown("g")
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text())

	fx.Clock.Add(600 * time.Millisecond)
	fx.Doc.KeyDown("A")
	assert.Equal(t, "a", c.TypeAheadBuffer())
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text())

	fx.Clock.Add(100 * time.Millisecond)
	fx.Doc.KeyDown("n")
	assert.Equal(t, "an", c.TypeAheadBuffer())
	assert.Equal(t, "Andorra", fx.Doc.ActiveElement().Text())
	assert.True(t, dom.Same(fx.Doc.ScrolledTo(), opts[2]))
	assert.Nil(t, opts[0].Query(".match"), "previous highlight cleared")
	require.NotNil(t, opts[2].Query(".match"))

	fx.Doc.KeyDown(dom.KeyArrowUp)
	assert.Equal(t, "Algeria", fx.Doc.ActiveElement().Text())
	for _, o := range opts {
		assert.Nil(t, o.Query(".match"), "arrow moves clear highlights")
	}
	assert.Equal(t, "Andorra", opts[2].Text())
}

func TestTypeAheadIgnoresModifiedKeys(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("Albania", "Brazil")...),
	)
	c.Instance("n").Open()
	ev := &dom.Event{Type: dom.KeyDown, Target: fx.Doc.ActiveElement(), Key: "b", Ctrl: true}
	fx.Doc.Dispatch(ev)
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text())
	assert.Equal(t, "", c.TypeAheadBuffer())
}

func TestEscapeClosesAndReturnsFocus(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("One", "Two")...),
	)
	inst := c.Instance("n")
	inst.Open()
	ev := fx.Doc.KeyDown(dom.KeyEscape)
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, inst.IsOpen())
	assert.True(t, dom.Same(fx.Doc.ActiveElement(), inst.Trigger()))

	ev = fx.Doc.KeyDown(dom.KeyEscape)
	assert.False(t, ev.DefaultPrevented(), "Escape with nothing open is left for others")
}

func TestOutsideClickClosesAndIsIdempotent(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("One", "Two")...),
	)
	inst := c.Instance("n")
	inst.Open()
	fx.Doc.Click(inst.Root().Query(".select-options"))
	assert.True(t, inst.IsOpen(), "clicks inside the container keep it open")

	fx.Doc.Click(fx.Doc.ByID("outside"))
	assert.False(t, inst.IsOpen())
	before := fx.Doc.HTML()
	inst.Close()
	fx.Doc.Click(fx.Doc.ByID("outside"))
	assert.Equal(t, before, fx.Doc.HTML())
}

func TestOwnerAndCurrent(t *testing.T) {
	_, c := mountSelects(t,
		testutil.Select("a", "A", testutil.Options("One")...),
		testutil.Select("b", "B", testutil.Options("Two")...),
	)
	b := c.Instance("b")
	assert.Nil(t, c.Current())
	b.Open()
	assert.Equal(t, b, c.Current())
	assert.True(t, c.AnyOpen())
	assert.Equal(t, b, c.Owner(b.Options()[0]))
	assert.Nil(t, c.Instance("missing"))
}

func TestCloseWithoutCommitRestoresSelection(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("Albania", "Brazil", "Chile")...),
	)
	inst := c.Instance("n")
	opts := inst.Options()

	inst.Open()
	fx.Doc.KeyDown("b")
	require.Equal(t, "Brazil", fx.Doc.ActiveElement().Text())
	require.NotNil(t, opts[1].Query(".match"))
	fx.Doc.KeyDown(dom.KeyEscape)

	assert.Nil(t, opts[1].Query(".match"), "highlight cleared on close")
	for _, o := range opts {
		_, selected := o.Attr("aria-selected")
		assert.False(t, selected, o.Text())
		assert.Equal(t, "-1", attr(o, "tabindex"), o.Text())
	}
	inst.Open()
	assert.Equal(t, "Albania", fx.Doc.ActiveElement().Text(), "browsed option is not treated as selected")
	inst.Select(opts[2])

	inst.Open()
	fx.Doc.KeyDown(dom.KeyArrowUp)
	require.Equal(t, "Brazil", fx.Doc.ActiveElement().Text())
	fx.Doc.Click(fx.Doc.ByID("outside"))
	assert.Equal(t, "true", attr(opts[2], "aria-selected"))
	assert.Equal(t, "0", attr(opts[2], "tabindex"))
	_, selected := opts[1].Attr("aria-selected")
	assert.False(t, selected)
	assert.Equal(t, "Chile", inst.Value())

	inst.Open()
	assert.Equal(t, "Chile", fx.Doc.ActiveElement().Text())
}

func TestPreventedKeyDownIsLeftAlone(t *testing.T) {
	fx, c := mountSelects(t,
		testutil.Select("n", "Choose", testutil.Options("One", "Two")...),
	)
	inst := c.Instance("n")
	inst.Open()
	fx.Doc.Body().Listen(dom.KeyDown, func(ev *dom.Event) { ev.PreventDefault() })
	fx.Doc.KeyDown(dom.KeyArrowDown)
	assert.Equal(t, "One", fx.Doc.ActiveElement().Text())
	fx.Doc.KeyDown("t")
	assert.Equal(t, "", c.TypeAheadBuffer())
	assert.True(t, inst.IsOpen())
}
