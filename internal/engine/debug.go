package engine

import (
	"github.com/tidwall/sjson"
)

// DebugJSON returns a JSON snapshot of the editor state: cursor, derived
// position, active window and the segment partition.
func (e *Editor) DebugJSON() (string, error) {
	w := e.active()
	p := w.Position(e.set)
	x, y := w.CursorPosition()

	kind := "root"
	if e.block != nil {
		kind = "block"
	}
	js := `{"segments":[]}`
	fields := []struct {
		path  string
		value any
	}{
		{"cursor.x", x},
		{"cursor.y", y},
		{"position.offset", p.Offset},
		{"position.trailing_spaces", p.TrailingSpaces},
		{"position.newlines", p.Newlines},
		{"position.invalid", p.Invalid},
		{"window.kind", kind},
		{"window.indent", w.Indent},
		{"window.top", w.TopIdx},
		{"window.cursor", w.CursorIdx},
		{"window.width", w.Width},
		{"window.height", w.Height},
		{"lines", e.set.Lines.Len()},
	}
	var err error
	for _, f := range fields {
		if js, err = sjson.Set(js, f.path, f.value); err != nil {
			return "", err
		}
	}

	for _, seg := range e.set.Segments() {
		rows := 0
		for h := seg.Start; !h.IsNil() && h != seg.End; h = e.set.Lines.Next(h) {
			rows++
		}
		js, err = sjson.Set(js, "segments.-1", map[string]any{
			"text":    seg.Text.String(),
			"indent":  seg.Indent,
			"wrap_at": seg.WrapAt,
			"shift":   seg.Shift,
			"bytes":   e.set.Rope(seg).Len(),
			"rows":    rows,
		})
		if err != nil {
			return "", err
		}
	}
	return js, nil
}
