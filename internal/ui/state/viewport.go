// Package state holds terminal-side view state that has no place in the
// document, such as how far a long option list is scrolled.
package state

// Viewport tracks the first visible row of a scrolling list.
type Viewport struct {
	Offset int
}

// Window returns the half-open range of rows to draw so that cursor stays
// visible, adjusting the offset as little as possible. A negative cursor keeps
// the current offset. visible <= 0 shows every row.
func (v *Viewport) Window(cursor, total, visible int) (start, end int) {
	if total <= 0 {
		v.Offset = 0
		return 0, 0
	}
	if visible <= 0 || visible >= total {
		v.Offset = 0
		return 0, total
	}
	maxOffset := total - visible
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	if cursor >= 0 {
		if cursor < v.Offset {
			v.Offset = cursor
		}
		if upper := v.Offset + visible - 1; cursor > upper {
			v.Offset = cursor - visible + 1
		}
	}
	return v.Offset, v.Offset + visible
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() { v.Offset = 0 }

// Viewports keys viewports by list name.
type Viewports map[string]*Viewport

// For returns the viewport for name, creating it on first use.
func (vs Viewports) For(name string) *Viewport {
	if v, ok := vs[name]; ok {
		return v
	}
	v := &Viewport{}
	vs[name] = v
	return v
}
