package window

import (
	"unicode/utf8"

	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// Position is the logical interpretation of the screen cursor.
type Position struct {
	// Offset is a byte offset into the cursor segment's text.
	Offset int

	// TrailingSpaces and Newlines count virtual whitespace between the end
	// of real text and the cursor.
	TrailingSpaces int
	Newlines       int

	// RelativeX is the cursor column relative to the segment's text.
	RelativeX int

	// Invalid is set when the cursor is left of the segment's indentation.
	Invalid bool
}

// Window is a view over the records from Origin up to End (exclusive, nil
// for the end of the document).
type Window struct {
	Origin vline.Handle
	End    vline.Handle

	// Top is the first visible record; TopIdx its index from Origin.
	Top    vline.Handle
	TopIdx int

	// Cursor is the record under the cursor row, or the last record when
	// the cursor is below the end of text.
	Cursor    vline.Handle
	CursorIdx int

	CurX, CurY int

	// Indent is the window's indentation baseline.
	Indent int

	Width, Height int

	pos *Position
}

// New creates a window over [origin, end) with the cursor at the top left.
func New(set *segment.Set, origin, end vline.Handle, width, height int) *Window {
	return &Window{
		Origin: origin,
		End:    end,
		Top:    origin,
		Cursor: origin,
		Indent: set.Of(origin).Indent,
		Width:  width,
		Height: max(height, 1),
	}
}

// Invalidate drops the cached position.
func (w *Window) Invalidate() { w.pos = nil }

// pad is the display padding of the segment owning h.
func (w *Window) pad(set *segment.Set, h vline.Handle) int {
	return set.Of(h).Indent - w.Indent
}

// Position returns the cursor's logical position, computing it if needed.
func (w *Window) Position(set *segment.Set) Position {
	if w.pos == nil {
		p := w.derive(set)
		w.pos = &p
	}
	return *w.pos
}

func (w *Window) derive(set *segment.Set) Position {
	l := set.Lines.Get(w.Cursor)
	var p Position
	p.RelativeX = w.CurX + w.Indent - set.Of(w.Cursor).Indent
	if p.RelativeX < 0 {
		p.Invalid = true
		p.RelativeX = 0
	}
	p.Newlines = w.TopIdx + w.CurY - w.CursorIdx
	if p.Newlines > 0 {
		p.Offset = l.EndByte
		p.TrailingSpaces = p.RelativeX
		return p
	}
	p.Newlines = 0

	row, terminated := content(set, w.Cursor)
	n := utf8.RuneCountInString(row)
	switch {
	case p.RelativeX <= n:
		p.Offset = l.StartByte + byteIndex(row, p.RelativeX)
	case !terminated:
		p.Offset = l.EndByte
	default:
		p.Offset = l.StartByte + len(row)
		p.TrailingSpaces = p.RelativeX - n
	}
	return p
}

// content returns the text of h without its terminator and whether it had one.
func content(set *segment.Set, h vline.Handle) (string, bool) {
	s := set.Lines.Text(set.Store, h)
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1], true
	}
	return s, false
}

// rowEnd is the column a horizontal move lands on when entering h from the
// right: after the last character of a terminated row, on the last
// character of a wrapped fragment.
func rowEnd(set *segment.Set, h vline.Handle) int {
	row, terminated := content(set, h)
	n := utf8.RuneCountInString(row)
	if !terminated && n > 0 {
		return n - 1
	}
	return n
}

func byteIndex(s string, chars int) int {
	i := 0
	for ; chars > 0 && i < len(s); chars-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// next returns the record after h inside the window, or nil.
func (w *Window) next(set *segment.Set, h vline.Handle) vline.Handle {
	n := set.Lines.Next(h)
	if n == w.End {
		return vline.Handle{}
	}
	return n
}

// prev returns the record before h inside the window, or nil.
func (w *Window) prev(set *segment.Set, h vline.Handle) vline.Handle {
	if h == w.Origin {
		return vline.Handle{}
	}
	return set.Lines.Prev(h)
}

// Redirect replaces references to a record merged into its predecessor.
func (w *Window) Redirect(removed, into vline.Handle) {
	if w.Top == removed {
		w.Top = into
		w.TopIdx--
	}
	if w.Cursor == removed {
		w.Cursor = into
		w.CursorIdx--
	}
	w.pos = nil
}

// Resync recomputes the row indices after a structural change and clamps
// the cursor into the visible area. It walks from Origin.
func (w *Window) Resync(set *segment.Set) {
	var ok bool
	if w.TopIdx, ok = set.Lines.Distance(w.Origin, w.Top); !ok {
		w.Top, w.TopIdx = w.Origin, 0
	}
	if w.CursorIdx, ok = set.Lines.Distance(w.Origin, w.Cursor); !ok || w.CursorIdx < w.TopIdx {
		w.Cursor, w.CursorIdx = w.Top, w.TopIdx
	}
	rows := w.CursorIdx - w.TopIdx
	if !w.next(set, w.Cursor).IsNil() || w.CurY < rows {
		w.CurY = rows
	}
	w.follow(set)
	w.CurX = max(w.CurX, 0)
	w.pos = nil
}

// follow scrolls so that the cursor row is visible.
func (w *Window) follow(set *segment.Set) {
	for w.CurY >= w.Height {
		n := w.next(set, w.Top)
		if n.IsNil() {
			break
		}
		w.Top = n
		w.TopIdx++
		w.CurY--
	}
	// Top cannot pass the last record, so drop virtual rows below the pane.
	w.CurY = min(w.CurY, w.Height-1)
	if w.CurY < 0 {
		w.Top, w.TopIdx, w.CurY = w.Cursor, w.CursorIdx, 0
	}
}

// place moves the cursor to the byte offset at of the segment that owns
// the current cursor record and recomputes the screen coordinates.
func (w *Window) place(set *segment.Set, at int) {
	h := recordAt(set, w.Cursor, at)
	if d, ok := w.steps(set, w.Cursor, h); ok {
		w.CursorIdx += d
	} else {
		w.CursorIdx, _ = set.Lines.Distance(w.Origin, h)
	}
	w.Cursor = h
	l := set.Lines.Get(h)
	w.CurX = w.pad(set, h) + set.Store.Rope(l.Owner).ByteToChar(at) - set.Store.Rope(l.Owner).ByteToChar(l.StartByte)
	w.CurY = w.CursorIdx - w.TopIdx
	w.follow(set)
	w.pos = nil
}

// steps counts records from a to b within the same owner, in either
// direction.
func (w *Window) steps(set *segment.Set, a, b vline.Handle) (int, bool) {
	owner := set.Lines.Get(a).Owner
	n := 0
	for h := a; !h.IsNil() && set.Lines.Get(h).Owner == owner; h = set.Lines.Next(h) {
		if h == b {
			return n, true
		}
		n++
	}
	n = 0
	for h := a; !h.IsNil() && set.Lines.Get(h).Owner == owner; h = set.Lines.Prev(h) {
		if h == b {
			return n, true
		}
		n--
	}
	return 0, false
}

// recordAt returns the record of from's owner that contains byte offset at.
func recordAt(set *segment.Set, from vline.Handle, at int) vline.Handle {
	h := from
	owner := set.Lines.Get(h).Owner
	for at < set.Lines.Get(h).StartByte {
		h = set.Lines.Prev(h)
	}
	for at >= set.Lines.Get(h).EndByte {
		n := set.Lines.Next(h)
		if n.IsNil() || set.Lines.Get(n).Owner != owner {
			break
		}
		h = n
	}
	return h
}

// CursorPosition returns the pane-relative cursor column and row.
func (w *Window) CursorPosition() (x, y int) {
	return w.CurX, w.CurY
}

// Resize changes the pane size and keeps the cursor visible.
func (w *Window) Resize(set *segment.Set, width, height int) {
	w.Width = width
	w.Height = max(height, 1)
	w.Resync(set)
}
