package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/pagekit/internal/dom"
	"github.com/atomicstack/pagekit/internal/listbox"
)

const (
	maxOptionRows = 8
	toggleClosed  = "☰"
	toggleOpen    = "✕"
	triggerClosed = "▾"
	triggerOpen   = "▴"
	committedMark = " ✓"
)

// segment is a run of text drawn with one style. A segment carrying a node
// is clickable.
type segment struct {
	text  string
	style *lipgloss.Style
	node  dom.Node
}

type styledLine struct {
	segments []segment
}

// hit maps the columns [from, to) of a rendered row to a node.
type hit struct {
	from, to int
	node     dom.Node
}

func textLine(text string, style *lipgloss.Style) styledLine {
	if text == "" {
		return styledLine{}
	}
	return styledLine{segments: []segment{{text: text, style: style}}}
}

func (l *styledLine) add(text string, style *lipgloss.Style, node dom.Node) {
	if text == "" {
		return
	}
	l.segments = append(l.segments, segment{text: text, style: style, node: node})
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) render() string {
	active := m.doc.ActiveElement()
	lines := make([]styledLine, 0, 32)
	lines = append(lines, m.navLines(active)...)
	lines = append(lines, m.liveLine())

	var footer []styledLine
	if m.showFooter {
		footer = []styledLine{{}, textLine(m.footerText(), styles.Footer)}
	}

	selects := m.selectLines(active, len(lines)+len(footer))
	lines = append(lines, selects...)
	lines = append(lines, footer...)
	lines = limitHeight(lines, m.height)

	out, rows := renderLines(lines, m.width)
	m.rows = rows
	return out
}

func (m *Model) navLines(active dom.Node) []styledLine {
	menu := m.page.Menu
	if menu == nil {
		return nil
	}
	items := menu.Items()
	toggle := menu.ToggleNode()

	var bar styledLine
	if brand := m.brand(items); brand != nil {
		bar.add(" "+brand.Text()+" ", pick(styles.Brand, brand, active), brand)
	}
	if m.wide() {
		for _, item := range items {
			bar.add("  ", nil, nil)
			bar.add(item.Text(), pick(styles.Item, item, active), item)
		}
	}
	bar.add("  ", nil, nil)
	icon, style := toggleClosed, styles.Toggle
	if expanded, _ := toggle.Attr("aria-expanded"); expanded == "true" {
		icon, style = toggleOpen, styles.ToggleOpen
	}
	bar.add(fmt.Sprintf("[%s %s]", icon, toggle.Text()), pick(style, toggle, active), toggle)

	lines := []styledLine{bar}
	if m.wide() || !menu.IsOpen() {
		return lines
	}
	for _, item := range items {
		var line styledLine
		line.add(indicator(item, active), styles.ItemIndicator, nil)
		line.add(item.Text(), pick(styles.Item, item, active), item)
		lines = append(lines, line)
	}
	return lines
}

// brand returns the first link of the nav bar that is not a menu item.
func (m *Model) brand(items []dom.Node) dom.Node {
	for _, link := range m.page.Menu.Nav().QueryAll("a") {
		if dom.IndexOf(items, link) < 0 {
			return link
		}
	}
	return nil
}

func (m *Model) liveLine() styledLine {
	region := m.page.Announcer.Region()
	if region == nil {
		return styledLine{}
	}
	text := region.Text()
	if text == "" {
		return styledLine{}
	}
	return textLine("» "+text, styles.Live)
}

// selectLines renders the form: heading, one row per select with its open
// option list, then any other focusable controls. used is the number of
// rows already spoken for.
func (m *Model) selectLines(active dom.Node, used int) []styledLine {
	var lines []styledLine
	if heading := m.doc.Query("main h1"); heading != nil {
		lines = append(lines, styledLine{}, textLine(heading.Text(), styles.Heading))
	}
	insts := m.page.Listboxes.Instances()
	labelWidth := 0
	for _, inst := range insts {
		if w := runewidth.StringWidth(selectLabel(inst)); w > labelWidth {
			labelWidth = w
		}
	}
	controls := m.otherControls(active)
	fixed := used + len(lines) + len(insts)
	if len(controls.segments) > 0 {
		fixed += 2
	}
	for _, inst := range insts {
		lines = append(lines, m.triggerLine(inst, active, labelWidth))
		if inst.IsOpen() {
			lines = append(lines, m.optionLines(inst, active, labelWidth+1, m.visibleOptions(fixed))...)
		}
	}
	if len(controls.segments) > 0 {
		lines = append(lines, styledLine{}, controls)
	}
	return lines
}

func (m *Model) triggerLine(inst *listbox.Instance, active dom.Node, labelWidth int) styledLine {
	var line styledLine
	line.add(runewidth.FillRight(selectLabel(inst), labelWidth)+" ", styles.Label, nil)
	icon, style := triggerClosed, styles.Trigger
	if inst.IsOpen() {
		icon, style = triggerOpen, styles.TriggerOpen
	}
	trigger := inst.Trigger()
	line.add(fmt.Sprintf("[ %s %s ]", inst.Label(), icon), pick(style, trigger, active), trigger)
	return line
}

func (m *Model) visibleOptions(fixed int) int {
	if m.height <= 0 {
		return maxOptionRows
	}
	// two rows for the scroll hints
	remain := m.height - fixed - 2
	if remain > maxOptionRows {
		return maxOptionRows
	}
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) optionLines(inst *listbox.Instance, active dom.Node, indent, visible int) []styledLine {
	options := inst.Options()
	if len(options) == 0 {
		return []styledLine{textLine(strings.Repeat(" ", indent)+"(no options)", styles.Info)}
	}
	cursor := dom.IndexOf(options, active)
	if cursor < 0 {
		cursor = selectedIndex(options)
	}
	start, end := m.viewports.For(inst.Name()).Window(cursor, len(options), visible)
	pad := strings.Repeat(" ", indent)
	matchSelector := "." + m.matchClass()
	valueAttr := m.page.Options.Listbox.ValueAttr
	if valueAttr == "" {
		valueAttr = listbox.DefaultOptions().ValueAttr
	}

	lines := make([]styledLine, 0, end-start+2)
	if start > 0 {
		lines = append(lines, textLine(fmt.Sprintf("%s  ↑ %d more", pad, start), styles.Info))
	}
	for _, opt := range options[start:end] {
		base := styles.Option
		if selected, _ := opt.Attr("aria-selected"); selected == "true" {
			base = styles.SelectedOption
		}
		style := pick(base, opt, active)
		var line styledLine
		line.add(pad, nil, nil)
		line.add(indicator(opt, active), styles.ItemIndicator, opt)
		label := opt.Text()
		if match := opt.Query(matchSelector); match != nil {
			prefix := match.Text()
			line.add(prefix, styles.Match, opt)
			line.add(strings.TrimPrefix(label, prefix), style, opt)
		} else {
			line.add(label, style, opt)
		}
		if v, _ := opt.Attr(valueAttr); v != "" && v == inst.Value() {
			line.add(committedMark, styles.SelectedOption, opt)
		}
		lines = append(lines, line)
	}
	if rest := len(options) - end; rest > 0 {
		lines = append(lines, textLine(fmt.Sprintf("%s  ↓ %d more", pad, rest), styles.Info))
	}
	return lines
}

func (m *Model) matchClass() string {
	if class := m.page.Options.Listbox.MatchClass; class != "" {
		return class
	}
	return listbox.DefaultOptions().MatchClass
}

// otherControls collects focusable controls outside the nav bar and the
// selects, such as a submit button.
func (m *Model) otherControls(active dom.Node) styledLine {
	var line styledLine
	var nav dom.Node
	if m.page.Menu != nil {
		nav = m.page.Menu.Nav()
	}
	for _, n := range m.doc.Tabbables(m.hidden) {
		if nav != nil && nav.Contains(n) {
			continue
		}
		if m.page.Listboxes.Owner(n) != nil {
			continue
		}
		if len(line.segments) > 0 {
			line.add(" ", nil, nil)
		}
		line.add("[ "+n.Text()+" ]", pick(styles.Button, n, active), n)
	}
	return line
}

func (m *Model) footerText() string {
	parts := make([]string, 0, 6)
	for _, binding := range []struct{ k, d string }{
		{m.keys.Next.Help().Key, m.keys.Next.Help().Desc},
		{m.keys.Prev.Help().Key, m.keys.Prev.Help().Desc},
		{m.keys.Activate.Help().Key, m.keys.Activate.Help().Desc},
		{"↑/↓", "move"},
		{"esc", "close"},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	} {
		parts = append(parts, binding.k+" "+binding.d)
	}
	return strings.Join(parts, "  ")
}

func selectLabel(inst *listbox.Instance) string {
	if label := inst.Root().Query("label"); label != nil && label.Text() != "" {
		return label.Text()
	}
	return inst.Name()
}

func selectedIndex(options []dom.Node) int {
	for i, opt := range options {
		if selected, _ := opt.Attr("aria-selected"); selected == "true" {
			return i
		}
	}
	return -1
}

func indicator(n, active dom.Node) string {
	if dom.Same(n, active) {
		return "› "
	}
	return "  "
}

// pick returns the focused style when n holds focus.
func pick(base *lipgloss.Style, n, active dom.Node) *lipgloss.Style {
	if dom.Same(n, active) {
		return styles.Focused
	}
	return base
}

// nodeAt returns the node drawn at column x of row y in the last render.
func (m *Model) nodeAt(x, y int) dom.Node {
	if y < 0 || y >= len(m.rows) {
		return nil
	}
	for _, h := range m.rows[y] {
		if x >= h.from && x < h.to {
			return h.node
		}
	}
	return nil
}

func limitHeight(lines []styledLine, height int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{textLine("…", nil)}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, textLine("…", nil))
	return trimmed
}

// renderLines draws lines and records where each clickable segment landed.
// Rows wider than width are cut with an ellipsis.
func renderLines(lines []styledLine, width int) (string, [][]hit) {
	out := make([]string, len(lines))
	rows := make([][]hit, len(lines))
	for i, line := range lines {
		var b strings.Builder
		col := 0
		for _, seg := range line.segments {
			w := runewidth.StringWidth(seg.text)
			if seg.node != nil {
				to := col + w
				if width > 0 && to > width {
					to = width
				}
				if col < to {
					rows[i] = append(rows[i], hit{from: col, to: to, node: seg.node})
				}
			}
			if seg.style != nil {
				b.WriteString(seg.style.Render(seg.text))
			} else {
				b.WriteString(seg.text)
			}
			col += w
		}
		text := b.String()
		if width > 0 && col > width {
			text = ansi.Truncate(text, width, "…")
		}
		out[i] = text
	}
	return strings.Join(out, "\n"), rows
}
