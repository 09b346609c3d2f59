package engine

import (
	"strings"

	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
	"github.com/dshills/blockwrap/internal/engine/window"
	"github.com/dshills/blockwrap/internal/logging"
)

// Editor is the facade over one document: its segments, the root window
// over the whole document and an optional block window focused on one
// structural block.
type Editor struct {
	set   *segment.Set
	root  *window.Window
	block *window.Window

	logger    *logging.Logger
	wrapWidth int
	width     int
	height    int
}

// New creates an editor over content. A terminator is appended if content
// does not end with one.
func New(content string, opts ...Option) *Editor {
	e := &Editor{
		logger:    logging.Null(),
		wrapWidth: DefaultWrapWidth,
		height:    DefaultPaneHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.width == 0 {
		e.width = e.wrapWidth
	}

	e.set = segment.New(content, e.baseWrap())
	e.root = window.New(e.set, e.set.Head, vline.Handle{}, e.width, e.height)
	e.set.Lines.OnMerge(e.redirect)
	return e
}

// redirect keeps every window off records removed by a merge.
func (e *Editor) redirect(removed, into vline.Handle) {
	e.root.Redirect(removed, into)
	if e.block != nil {
		e.block.Redirect(removed, into)
	}
}

func (e *Editor) baseWrap() int {
	return max(min(e.wrapWidth, e.width), segment.MinWrapWidth)
}

// active is the window that receives commands.
func (e *Editor) active() *window.Window {
	if e.block != nil {
		return e.block
	}
	return e.root
}

// Set exposes the segment set.
func (e *Editor) Set() *segment.Set { return e.set }

// InBlockWindow reports whether a block window is open.
func (e *Editor) InBlockWindow() bool { return e.block != nil }

// Text returns the document with every segment's indentation applied.
func (e *Editor) Text() string { return e.set.Text() }

// Check verifies the document invariants.
func (e *Editor) Check() error { return e.set.Check() }

// DisplayLines returns the rows of the active window, bounded by the pane
// height. The iterator is restartable with Reset.
func (e *Editor) DisplayLines() *window.DisplayIterator {
	return e.active().Lines(e.set)
}

// Rows renders the visible rows as plain strings, padding applied and
// terminators dropped.
func (e *Editor) Rows() []string {
	var out []string
	for it := e.DisplayLines(); it.Next(); {
		l := it.Line()
		out = append(out, strings.Repeat(" ", l.Indent)+strings.TrimSuffix(l.Text, "\n"))
	}
	return out
}

// CursorPosition returns the pane-relative cursor column and row.
func (e *Editor) CursorPosition() (x, y int) {
	return e.active().CursorPosition()
}

// Position returns the derived logical position of the cursor.
func (e *Editor) Position() window.Position {
	return e.active().Position(e.set)
}

// InsertChar inserts c at the cursor.
func (e *Editor) InsertChar(c rune) bool { return e.active().InsertChar(e.set, c) }

// DeleteCharForward deletes the character under the cursor.
func (e *Editor) DeleteCharForward() bool { return e.active().DeleteCharForward(e.set) }

// DeleteCharBackward deletes the character before the cursor.
func (e *Editor) DeleteCharBackward() bool { return e.active().DeleteCharBackward(e.set) }

// MoveUp moves the cursor up one row.
func (e *Editor) MoveUp() bool { return e.active().Up(e.set) }

// MoveDown moves the cursor down one row.
func (e *Editor) MoveDown() bool { return e.active().Down(e.set) }

// MoveLeft moves the cursor left, wrapping to the previous row.
func (e *Editor) MoveLeft() bool { return e.active().Left(e.set) }

// MoveRight moves the cursor right, wrapping to the next row.
func (e *Editor) MoveRight() bool { return e.active().Right(e.set) }

// MoveStart toggles between the first non-blank column and column 0.
func (e *Editor) MoveStart() bool { return e.active().RowStart(e.set) }

// MoveEnd toggles between the last non-blank column and the row end.
func (e *Editor) MoveEnd() bool { return e.active().RowEnd(e.set) }

// MoveZero moves the cursor to column 0.
func (e *Editor) MoveZero() bool { return e.active().Zero() }

// ScrollUp scrolls the view up one row.
func (e *Editor) ScrollUp() bool { return e.active().ScrollUp(e.set) }

// ScrollDown scrolls the view down one row.
func (e *Editor) ScrollDown() bool { return e.active().ScrollDown(e.set) }

// PageUp scrolls the view up one page.
func (e *Editor) PageUp() bool { return e.active().PageUp(e.set) }

// PageDown scrolls the view down one page.
func (e *Editor) PageDown() bool { return e.active().PageDown(e.set) }

// UpdatePaneSize resizes every window and rewraps the document to the new
// width, capped by the configured wrap width.
func (e *Editor) UpdatePaneSize(width, height int) bool {
	if width <= 0 || height <= 0 || (width == e.width && height == e.height) {
		return false
	}
	e.relayout(func() { e.width, e.height = width, height })
	e.logger.Debug("pane resized to %dx%d, wrap %d", width, height, e.baseWrap())
	return true
}

// SetWrapWidth changes the configured wrap width, re-wrapping every
// segment. Values below segment.MinWrapWidth are raised to it.
func (e *Editor) SetWrapWidth(width int) bool {
	width = max(width, segment.MinWrapWidth)
	if width == e.wrapWidth {
		return false
	}
	e.relayout(func() { e.wrapWidth = width })
	e.logger.Debug("wrap width set to %d", width)
	return true
}

// relayout applies change and re-wraps, keeping the cursor on the same
// character of the active window.
func (e *Editor) relayout(change func()) {
	w := e.active()
	m, marked := w.Mark(e.set)
	change()
	e.set.SetBaseWrap(e.baseWrap())

	e.root.Resize(e.set, e.width, e.height)
	if e.block != nil {
		e.block.Resize(e.set, e.width, e.height)
	}
	if marked {
		w.Restore(e.set, m)
	}
}
