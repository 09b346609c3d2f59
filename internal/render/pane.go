package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/engine"
	"github.com/dshills/blockwrap/internal/engine/segment"
)

// Gutter is the width of the continuation marker column.
const Gutter = 1

// Markers drawn in the gutter and indentation padding.
const (
	ContinuationMark = '↪'
	IndentGuide      = '┊'
	Separator        = '│'
)

// Layout splits a screen into editor panes side by side, an optional debug
// pane on the right and a status row at the bottom.
func Layout(width, height, panes int, debug bool) (editors []Rect, dbg Rect, status Rect) {
	status = Rect{X: 0, Y: height - 1, W: width, H: 1}
	h := max(height-1, 0)
	if debug {
		w := min(40, width/3)
		dbg = Rect{X: width - w, Y: 0, W: w, H: h}
		width -= w + 1
	}
	panes = max(panes, 1)
	w := (width - (panes - 1)) / panes
	for i := range panes {
		x := i * (w + 1)
		pw := w
		if i == panes-1 {
			pw = width - x
		}
		editors = append(editors, Rect{X: x, Y: 0, W: pw, H: h})
	}
	return editors, dbg, status
}

// ContentSize is the text area of an editor pane: the pane minus its title
// row and gutter.
func ContentSize(r Rect) (width, height int) {
	return max(r.W-Gutter, segment.MinWrapWidth), max(r.H-1, 1)
}

// Renderer draws frames with one theme.
type Renderer struct {
	b     backend.Backend
	theme Theme
}

// New creates a renderer.
func New(b backend.Backend, theme Theme) *Renderer {
	return &Renderer{b: b, theme: theme}
}

// SetTheme replaces the theme, for example after a config reload.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Begin clears the screen for a new frame.
func (r *Renderer) Begin() {
	r.b.Clear()
	r.b.HideCursor()
}

// End flushes the frame.
func (r *Renderer) End() { r.b.Show() }

// Editor draws one editor pane. The active pane also gets the cursor.
func (r *Renderer) Editor(rect Rect, title string, e *engine.Editor, active bool) {
	if rect.Empty() {
		return
	}
	titleStyle := r.theme.Title
	if active {
		titleStyle = r.theme.ActiveTitle
	}
	if e.InBlockWindow() {
		title += " [block]"
	}
	DrawString(r.b, rect.X, rect.Y, rect.W, pad(" "+title, rect.W), titleStyle)

	body := Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	Fill(r.b, body, r.theme.Text)
	cx, cy := e.CursorPosition()
	cursorCell := cx

	it := e.DisplayLines()
	for it.Next() {
		row := it.Row()
		if row >= body.H {
			break
		}
		line := it.Line()
		y := body.Y + row
		if line.Continuation {
			r.b.SetContent(body.X, y, ContinuationMark, nil, r.theme.Continuation)
		}
		x := body.X + Gutter
		width := body.W - Gutter
		for col := 0; col < line.Indent && col < width; col++ {
			ch := ' '
			if col%segment.IndentUnit == 0 && !line.Continuation {
				ch = IndentGuide
			}
			r.b.SetContent(x+col, y, ch, nil, r.theme.Indent)
		}
		text := strings.TrimSuffix(line.Text, "\n")
		if line.Indent < width {
			DrawString(r.b, x+line.Indent, y, width-line.Indent, text, r.theme.Text)
		}
		if row == cy && cx > line.Indent {
			cursorCell = line.Indent + prefixWidth(text, cx-line.Indent)
		}
	}

	if active && cy < body.H {
		r.b.ShowCursor(body.X+Gutter+min(cursorCell, body.W-Gutter-1), body.Y+cy)
	}
}

// Debug draws a JSON document, pretty printed, in rect, skipping the
// first scroll lines. It returns the scroll offset actually used, clamped
// so the last line stays visible.
func (r *Renderer) Debug(rect Rect, js string, scroll int) int {
	if rect.Empty() {
		return 0
	}
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		r.b.SetContent(rect.X-1, y, Separator, nil, r.theme.Border)
	}
	Fill(r.b, rect, r.theme.Debug)
	DrawString(r.b, rect.X, rect.Y, rect.W, pad(" state", rect.W), r.theme.Title)

	out := pretty.PrettyOptions([]byte(js), &pretty.Options{
		Width:    rect.W,
		Indent:   "  ",
		SortKeys: true,
	})
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	scroll = max(min(scroll, len(lines)-1), 0)
	for i, l := range lines[scroll:] {
		if i+1 >= rect.H {
			break
		}
		DrawString(r.b, rect.X, rect.Y+1+i, rect.W, l, r.theme.Debug)
	}
	return scroll
}

// Separators draws the borders between adjacent editor panes.
func (r *Renderer) Separators(panes []Rect) {
	for _, p := range panes[:max(len(panes)-1, 0)] {
		x := p.X + p.W
		for y := p.Y; y < p.Y+p.H; y++ {
			r.b.SetContent(x, y, Separator, nil, r.theme.Border)
		}
	}
}

// Status draws the status row: left-aligned text and a right-aligned
// message.
func (r *Renderer) Status(rect Rect, left, right string) {
	if rect.Empty() {
		return
	}
	line := pad(left, rect.W)
	if w := Width(right); w > 0 && w+Width(left)+1 <= rect.W {
		line = pad(left, rect.W-w) + right
	}
	DrawString(r.b, rect.X, rect.Y, rect.W, line, r.theme.Status)
}

// StatusText summarises an editor for the status row.
func StatusText(pane, panes int, e *engine.Editor) string {
	x, y := e.CursorPosition()
	return fmt.Sprintf(" pane %d/%d  col %d  row %d  segments %d", pane+1, panes, x, y, e.Set().Len())
}
