package window

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/blockwrap/internal/engine/segment"
)

// newlines is the number of virtual rows between the cursor record and the
// cursor.
func (w *Window) newlines() int {
	return w.TopIdx + w.CurY - w.CursorIdx
}

// ScrollUp moves the view up one row, keeping the cursor on its screen row.
func (w *Window) ScrollUp(set *segment.Set) bool {
	p := w.prev(set, w.Top)
	if p.IsNil() {
		return false
	}
	w.Top = p
	w.TopIdx--
	if w.CursorIdx > w.TopIdx+w.CurY {
		w.Cursor = set.Lines.Prev(w.Cursor)
		w.CursorIdx--
	}
	w.pos = nil
	return true
}

// ScrollDown moves the view down one row, keeping the cursor on its screen
// row.
func (w *Window) ScrollDown(set *segment.Set) bool {
	n := w.next(set, w.Top)
	if n.IsNil() {
		return false
	}
	w.Top = n
	w.TopIdx++
	if w.CursorIdx < w.TopIdx+w.CurY {
		if c := w.next(set, w.Cursor); !c.IsNil() {
			w.Cursor = c
			w.CursorIdx++
		}
	}
	w.pos = nil
	return true
}

// PageUp scrolls up by one screen.
func (w *Window) PageUp(set *segment.Set) bool {
	changed := false
	for i := 0; i < max(w.Height-1, 1); i++ {
		if !w.ScrollUp(set) {
			break
		}
		changed = true
	}
	return changed
}

// PageDown scrolls down by one screen.
func (w *Window) PageDown(set *segment.Set) bool {
	changed := false
	for i := 0; i < max(w.Height-1, 1); i++ {
		if !w.ScrollDown(set) {
			break
		}
		changed = true
	}
	return changed
}

// Up moves the cursor up one row, scrolling at the top of the view.
func (w *Window) Up(set *segment.Set) bool {
	if w.CurY == 0 {
		return w.ScrollUp(set)
	}
	w.CurY--
	if w.CursorIdx > w.TopIdx+w.CurY {
		w.Cursor = set.Lines.Prev(w.Cursor)
		w.CursorIdx--
	}
	w.pos = nil
	return true
}

// Down moves the cursor down one row. Below the last record the cursor
// keeps moving through virtual rows until the bottom of the view.
func (w *Window) Down(set *segment.Set) bool {
	if w.CurY+1 >= w.Height {
		return w.ScrollDown(set)
	}
	w.CurY++
	if c := w.next(set, w.Cursor); !c.IsNil() && w.newlines() > 0 {
		w.Cursor = c
		w.CursorIdx++
	}
	w.pos = nil
	return true
}

// Left moves the cursor one column left, wrapping to the end of the
// previous row.
func (w *Window) Left(set *segment.Set) bool {
	if w.CurX > 0 {
		w.CurX--
		w.pos = nil
		return true
	}
	if !w.Up(set) {
		return false
	}
	if w.newlines() > 0 {
		w.CurX = 0
	} else {
		w.CurX = max(w.pad(set, w.Cursor)+rowEnd(set, w.Cursor), 0)
	}
	return true
}

// Right moves the cursor one column right, wrapping to the start of the
// next row at the wrap width.
func (w *Window) Right(set *segment.Set) bool {
	seg := set.Of(w.Cursor)
	if w.CurX+1 < w.pad(set, w.Cursor)+seg.WrapAt {
		w.CurX++
		w.pos = nil
		return true
	}
	if !w.Down(set) {
		return false
	}
	w.CurX = 0
	return true
}

// Zero moves the cursor to column 0.
func (w *Window) Zero() bool {
	if w.CurX == 0 {
		return false
	}
	w.CurX = 0
	w.pos = nil
	return true
}

// RowStart moves to the first non-blank character of the row, or to column 0
// when already there.
func (w *Window) RowStart(set *segment.Set) bool {
	row := w.cursorRow(set)
	i := utf8.RuneCountInString(row) - utf8.RuneCountInString(strings.TrimLeftFunc(row, unicode.IsSpace))
	target := w.pad(set, w.Cursor) + i
	if w.CurX == target {
		target = 0
	}
	return w.setX(target)
}

// RowEnd moves after the last non-blank character of the row, or to the row
// end when already there.
func (w *Window) RowEnd(set *segment.Set) bool {
	row := w.cursorRow(set)
	pad := w.pad(set, w.Cursor)
	target := pad + utf8.RuneCountInString(strings.TrimRightFunc(row, unicode.IsSpace))
	if w.CurX == target {
		target = pad + utf8.RuneCountInString(row)
	}
	return w.setX(target)
}

func (w *Window) setX(x int) bool {
	x = max(x, 0)
	if x == w.CurX {
		return false
	}
	w.CurX = x
	w.pos = nil
	return true
}

// cursorRow returns the text under the cursor row, empty for virtual rows.
func (w *Window) cursorRow(set *segment.Set) string {
	if w.newlines() > 0 {
		return ""
	}
	row, _ := content(set, w.Cursor)
	return row
}
