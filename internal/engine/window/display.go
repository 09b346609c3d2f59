package window

import (
	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// DisplayLine is one visible row.
type DisplayLine struct {
	// Text is the raw row text, including a trailing '\n' when the row
	// ends a logical line.
	Text string

	// Indent is the number of padding columns before Text.
	Indent int

	Continuation bool
}

// DisplayIterator walks the visible rows of a window, at most Height of
// them. It is restartable with Reset.
type DisplayIterator struct {
	set   *segment.Set
	w     *Window
	cur   vline.Handle
	row   int
	line  DisplayLine
	begun bool
}

// Lines returns an iterator over the window's visible rows.
func (w *Window) Lines(set *segment.Set) *DisplayIterator {
	return &DisplayIterator{set: set, w: w}
}

// Reset rewinds the iterator to the top of the window.
func (it *DisplayIterator) Reset() {
	it.cur = vline.Handle{}
	it.row = 0
	it.begun = false
}

// Next advances to the next row.
func (it *DisplayIterator) Next() bool {
	if it.row >= it.w.Height {
		return false
	}
	if !it.begun {
		it.cur = it.w.Top
		it.begun = true
	} else if !it.cur.IsNil() {
		it.cur = it.w.next(it.set, it.cur)
	}
	if it.cur.IsNil() {
		return false
	}
	l := it.set.Lines.Get(it.cur)
	it.line = DisplayLine{
		Text:         it.set.Lines.Text(it.set.Store, it.cur),
		Indent:       it.w.pad(it.set, it.cur),
		Continuation: l.Continuation,
	}
	it.row++
	return true
}

// Line returns the current row.
func (it *DisplayIterator) Line() DisplayLine { return it.line }

// Row returns the zero-based screen row of the current line.
func (it *DisplayIterator) Row() int { return it.row - 1 }
