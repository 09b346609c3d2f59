package segment

import (
	"strings"

	"github.com/dshills/blockwrap/internal/engine/vline"
)

// Boundary describes the first non-blank line beyond a segment edge.
type Boundary struct {
	Line vline.Handle

	// Relative is the line's indentation relative to the segment the walk
	// started from; Absolute is its total on-screen indentation.
	Relative int
	Absolute int
}

// DetectIndent returns the leading spaces of h's logical line, floored to a
// multiple of IndentUnit and relative to the owning segment. ok is false
// for a blank line.
func (s *Set) DetectIndent(h vline.Handle) (indent int, ok bool) {
	line := s.Lines.LineText(s.Store, h)
	if strings.TrimSpace(line) == "" {
		return 0, false
	}
	n := leadingSpaces(line)
	return n - n%IndentUnit, true
}

// IndentBy shifts seg right by n columns and rewraps it.
func (s *Set) IndentBy(seg *Segment, n int) {
	seg.Indent += n
	seg.Shift += n
	seg.WrapAt = wrapFor(seg.BaseWrap, seg.Indent)
	s.Lines.Rewrap(s.Store, seg.Start, seg.WrapAt)
}

// DedentBy shifts seg left by n columns. It reports false, changing
// nothing, if seg is indented less than n.
func (s *Set) DedentBy(seg *Segment, n int) bool {
	if n <= 0 || seg.Indent < n {
		return false
	}
	seg.Indent -= n
	seg.Shift -= n
	seg.WrapAt = wrapFor(seg.BaseWrap, seg.Indent)
	s.Lines.Rewrap(s.Store, seg.Start, seg.WrapAt)
	return true
}

// BlockBounds finds the run of lines around at, within at's segment, that
// are indented at least indent. Blank lines inside the run belong to it;
// blank lines at either edge do not. It returns the run's first head and
// the record after its last line.
func (s *Set) BlockBounds(at vline.Handle, indent int) (start, end vline.Handle) {
	at = s.Lines.LineStart(at)
	owner := s.Lines.Get(at).Owner
	in := func(h vline.Handle) (inside, blank bool) {
		d, ok := s.DetectIndent(h)
		if !ok {
			return true, true
		}
		return d >= indent, false
	}
	mine := func(h vline.Handle) bool {
		return !h.IsNil() && s.Lines.Get(h).Owner == owner
	}

	start = at
	for h := at; ; {
		p := s.Lines.Prev(h)
		if !mine(p) {
			break
		}
		p = s.Lines.LineStart(p)
		inside, blank := in(p)
		if !inside {
			break
		}
		h = p
		if !blank {
			start = p
		}
	}

	last := at
	for h := s.Lines.LineEnd(at); ; {
		n := s.Lines.Next(h)
		if !mine(n) {
			break
		}
		inside, blank := in(n)
		if !inside {
			break
		}
		h = s.Lines.LineEnd(n)
		if !blank {
			last = n
		}
	}
	return start, s.Lines.Next(s.Lines.LineEnd(last))
}

// FindNextBlock walks forward from the end of seg, skipping blank lines,
// to the first non-blank line before limit.
func (s *Set) FindNextBlock(seg *Segment, limit vline.Handle) (Boundary, bool) {
	for h := seg.End; !h.IsNil() && h != limit; h = s.Lines.Next(s.Lines.LineEnd(h)) {
		if b, ok := s.boundary(seg, h); ok {
			return b, true
		}
	}
	return Boundary{}, false
}

// FindPrevBlock walks backward from the start of seg, skipping blank
// lines, to the first non-blank line at or after origin.
func (s *Set) FindPrevBlock(seg *Segment, origin vline.Handle) (Boundary, bool) {
	if seg.Start == origin {
		return Boundary{}, false
	}
	for h := s.Lines.Prev(seg.Start); !h.IsNil(); h = s.Lines.Prev(h) {
		h = s.Lines.LineStart(h)
		if b, ok := s.boundary(seg, h); ok {
			return b, true
		}
		if h == origin {
			break
		}
	}
	return Boundary{}, false
}

func (s *Set) boundary(from *Segment, h vline.Handle) (Boundary, bool) {
	d, ok := s.DetectIndent(h)
	if !ok {
		return Boundary{}, false
	}
	abs := s.Of(h).Indent + d
	return Boundary{Line: h, Relative: abs - from.Indent, Absolute: abs}, true
}
