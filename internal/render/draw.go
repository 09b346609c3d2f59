package render

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/blockwrap/internal/backend"
)

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// DrawString draws s at (x, y), clipped to width columns, and returns the
// columns used. Control characters are drawn as spaces.
func DrawString(b backend.Backend, x, y, width int, s string, style backend.Style) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		runes := g.Runes()
		if runes[0] < ' ' || runes[0] == 0x7f {
			runes, w = []rune{' '}, 1
		}
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		b.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
	return col
}

// Fill paints r with spaces.
func Fill(b backend.Backend, r Rect, style backend.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			b.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Width is the column width of s.
func Width(s string) int { return uniseg.StringWidth(s) }

// prefixWidth is the width of the first n characters of s; characters past
// the end count one column each.
func prefixWidth(s string, n int) int {
	w := 0
	for _, r := range s {
		if n == 0 {
			return w
		}
		w += uniseg.StringWidth(string(r))
		n--
	}
	return w + n
}

// pad returns s truncated or space padded to exactly width columns.
func pad(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	var sb strings.Builder
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if col+g.Width() > width {
			break
		}
		sb.WriteString(g.Str())
		col += g.Width()
	}
	return sb.String() + strings.Repeat(" ", width-col)
}
