package engine

import (
	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
	"github.com/dshills/blockwrap/internal/engine/window"
)

// CreateBlock makes the run of lines around at that are indented at least
// indent, relative to at's segment, a segment of its own. The run's
// indentation is moved from its text into the segment.
func (e *Editor) CreateBlock(at vline.Handle, indent int) *segment.Segment {
	seg := e.set.Of(at)
	start, end := e.set.BlockBounds(at, indent)
	if !end.IsNil() && end != seg.End {
		e.set.Split(seg, end, 0)
	}
	block := e.set.Split(seg, start, indent)
	if block != seg || indent > 0 {
		e.logger.Debug("block %s at indent %d", block.Text, block.Indent)
	}
	return block
}

// blocks collects the structural block under the cursor and its siblings:
// the neighbouring runs, across segment boundaries and blank lines, that
// are indented at least as deep. It returns nil if the cursor is not on a
// non-blank line of text.
func (e *Editor) blocks(w *window.Window) []*segment.Segment {
	m, ok := w.Mark(e.set)
	if !ok {
		return nil
	}
	rel, ok := e.set.DetectIndent(m.Line)
	if !ok {
		return nil
	}
	first := e.CreateBlock(m.Line, rel)
	level := first.Indent

	sibling := func(b segment.Boundary) *segment.Segment {
		return e.CreateBlock(b.Line, max(level-e.set.Of(b.Line).Indent, 0))
	}
	out := []*segment.Segment{first}
	for cur := first; ; {
		b, ok := e.set.FindNextBlock(cur, w.End)
		if !ok || b.Absolute < level {
			break
		}
		cur = sibling(b)
		out = append(out, cur)
	}
	for cur := first; ; {
		b, ok := e.set.FindPrevBlock(cur, w.Origin)
		if !ok || b.Absolute < level {
			break
		}
		cur = sibling(b)
		out = append(out, cur)
	}
	return out
}

// Indent shifts the structural block under the cursor, and every sibling
// block at the same or deeper indentation, right by one indent unit.
func (e *Editor) Indent() bool {
	return e.shift(segment.IndentUnit)
}

// Dedent shifts the structural block under the cursor and its siblings
// left by one indent unit. It does nothing if that would move the block
// left of the window's indentation baseline.
func (e *Editor) Dedent() bool {
	return e.shift(-segment.IndentUnit)
}

func (e *Editor) shift(n int) bool {
	w := e.active()
	m, ok := w.Mark(e.set)
	if !ok {
		return false
	}
	if n < 0 {
		rel, ok := e.set.DetectIndent(m.Line)
		if !ok || e.set.Of(m.Line).Indent+rel+n < w.Indent {
			return false
		}
	}

	blocks := e.blocks(w)
	if len(blocks) == 0 {
		return false
	}
	for _, b := range blocks {
		if n > 0 {
			e.set.IndentBy(b, n)
		} else if !e.set.DedentBy(b, -n) {
			panic("engine: dedent of a block below its own indentation")
		}
	}
	e.logger.Debug("shifted %d blocks by %d", len(blocks), n)

	e.compact()
	m.Column += n
	w.Restore(e.set, m)
	if w != e.root {
		e.root.Resync(e.set)
	}
	return true
}

// compact merges adjacent segments of equal shift that are not separated
// by the edge of an open window.
func (e *Editor) compact() {
	keep := func(vline.Handle) bool { return false }
	if b := e.block; b != nil {
		keep = func(h vline.Handle) bool { return h == b.Origin || h == b.End }
	}
	if n := e.set.Compact(keep); n > 0 {
		e.logger.Debug("compacted %d segments, %d left", n, e.set.Len())
	}
}

// SplitBuffer splits the segment under the cursor at the cursor line.
func (e *Editor) SplitBuffer() bool {
	w := e.active()
	m, ok := w.Mark(e.set)
	if !ok {
		return false
	}
	seg := e.set.Of(m.Line)
	if m.Line == seg.Start {
		return false
	}
	tail := e.set.Split(seg, m.Line, 0)
	e.logger.Debug("split %s into %s", seg.Text, tail.Text)
	w.Restore(e.set, m)
	return true
}

// CreateWindow focuses a block window on the structural block under the
// cursor. The window's indentation baseline is the block's indentation.
func (e *Editor) CreateWindow() bool {
	w := e.active()
	m, ok := w.Mark(e.set)
	if !ok {
		return false
	}
	rel, ok := e.set.DetectIndent(m.Line)
	if !ok {
		return false
	}
	block := e.CreateBlock(m.Line, rel)
	if w == e.block && block.Start == w.Origin && block.End == w.End {
		return false
	}

	bw := window.New(e.set, block.Start, block.End, e.width, e.height)
	bw.Restore(e.set, m)
	e.block = bw
	e.root.Resync(e.set)
	e.logger.Debug("block window on %s, baseline %d", block.Text, block.Indent)
	return true
}

// RootWindow closes the block window and returns to the whole document.
// Segments left over from block windows are merged.
func (e *Editor) RootWindow() bool {
	if e.block == nil {
		return false
	}
	m, ok := e.block.Mark(e.set)
	e.block = nil
	e.compact()
	if ok {
		e.root.Restore(e.set, m)
	} else {
		e.root.Resync(e.set)
	}
	e.logger.Debug("root window, %d segments", e.set.Len())
	return true
}
