package window

import (
	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// Mark is a cursor location that survives structural changes: the head of
// a logical line and a document column. Heads are never removed by
// splitting, merging or rewrapping.
type Mark struct {
	Line   vline.Handle
	Column int
}

// Mark returns the cursor as a mark. ok is false when the cursor is below
// the end of text or left of its segment's indentation.
func (w *Window) Mark(set *segment.Set) (m Mark, ok bool) {
	p := w.Position(set)
	if p.Invalid || p.Newlines > 0 {
		return Mark{}, false
	}
	head := set.Lines.LineStart(w.Cursor)
	seg := set.Of(head)
	r := set.Rope(seg)
	col := r.ByteToChar(p.Offset) - r.ByteToChar(set.Lines.Get(head).StartByte)
	return Mark{Line: head, Column: seg.Indent + col + p.TrailingSpaces}, true
}

// Restore moves the cursor to m and recomputes the row indices.
func (w *Window) Restore(set *segment.Set, m Mark) {
	seg := set.Of(m.Line)
	r := set.Rope(seg)
	rel := max(m.Column-seg.Indent, 0)

	h := m.Line
	for {
		l := set.Lines.Get(h)
		if _, terminated := content(set, h); terminated {
			break
		}
		n := r.ByteToChar(l.EndByte) - r.ByteToChar(l.StartByte)
		if rel < n {
			break
		}
		rel -= n
		h = set.Lines.Next(h)
	}

	var ok bool
	if w.TopIdx, ok = set.Lines.Distance(w.Origin, w.Top); !ok {
		w.Top, w.TopIdx = w.Origin, 0
	}
	if w.CursorIdx, ok = set.Lines.Distance(w.Origin, h); !ok {
		w.Resync(set)
		return
	}
	w.Cursor = h
	w.CurX = w.pad(set, h) + rel
	w.CurY = w.CursorIdx - w.TopIdx
	w.follow(set)
	w.pos = nil
}
