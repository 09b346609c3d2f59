package window

import (
	"strings"

	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// insert adds str at byte offset at of the cursor segment and repairs the
// wrap of the record containing it.
func (w *Window) insert(set *segment.Set, h vline.Handle, at int, str string) {
	seg := set.Of(h)
	n := set.Store.Insert(seg.Text, at, str)
	set.Lines.Insert(set.Store, h, n, seg.WrapAt)
}

// materialize turns pending virtual newlines and trailing spaces into text
// and returns the offset where the next character goes.
func (w *Window) materialize(set *segment.Set, p Position) int {
	at := p.Offset
	if p.Newlines > 0 {
		w.insert(set, w.Cursor, at, strings.Repeat("\n", p.Newlines))
		// The last inserted terminator ends the line being typed on.
		at += p.Newlines - 1
	}
	if p.TrailingSpaces > 0 {
		w.insert(set, recordAt(set, w.Cursor, at), at, strings.Repeat(" ", p.TrailingSpaces))
		at += p.TrailingSpaces
	}
	return at
}

// InsertChar inserts c at the cursor, first materialising any virtual
// whitespace, and moves the cursor after it.
func (w *Window) InsertChar(set *segment.Set, c rune) bool {
	p := w.Position(set)
	if p.Invalid {
		return false
	}
	at := w.materialize(set, p)
	h := recordAt(set, w.Cursor, at)
	seg := set.Of(h)
	n := set.Store.InsertChar(seg.Text, at, c)
	set.Lines.Insert(set.Store, h, n, seg.WrapAt)
	w.place(set, at+n)
	return true
}

// DeleteCharForward deletes the character under the cursor. Past the end
// of a line it joins the next line, padding with the virtual spaces.
// The segment's final terminator is never deleted.
func (w *Window) DeleteCharForward(set *segment.Set) bool {
	p := w.Position(set)
	if p.Invalid || p.Newlines > 0 {
		return false
	}
	seg := set.Of(w.Cursor)
	if p.Offset >= set.Rope(seg).Len()-1 {
		return false
	}
	at := w.materialize(set, p)
	h := recordAt(set, w.Cursor, at)
	n := set.Store.DeleteChar(seg.Text, at)
	set.Lines.Remove(set.Store, h, n, seg.WrapAt)
	w.place(set, at)
	return true
}

// DeleteCharBackward deletes the character before the cursor. Virtual
// whitespace is consumed first without touching the text.
func (w *Window) DeleteCharBackward(set *segment.Set) bool {
	p := w.Position(set)
	if p.Invalid {
		return false
	}
	switch {
	case p.TrailingSpaces > 0:
		w.CurX--
		w.pos = nil
		return true
	case p.Newlines > 0:
		w.CurY--
		if p.Newlines == 1 {
			w.CurX = w.pad(set, w.Cursor) + rowEnd(set, w.Cursor)
		}
		w.pos = nil
		return true
	case p.Offset == 0:
		return false
	}
	seg := set.Of(w.Cursor)
	r := set.Rope(seg)
	at := r.CharToByte(r.ByteToChar(p.Offset) - 1)
	h := recordAt(set, w.Cursor, at)
	n := set.Store.DeleteChar(seg.Text, at)
	set.Lines.Remove(set.Store, h, n, seg.WrapAt)
	w.place(set, at)
	return true
}
