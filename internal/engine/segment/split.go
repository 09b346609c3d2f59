package segment

import (
	"fmt"
	"strings"

	"github.com/dshills/blockwrap/internal/engine/rope"
	"github.com/dshills/blockwrap/internal/engine/text"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// heads collapses every logical line of owner from h onward and returns
// their head records.
func (s *Set) heads(h vline.Handle, owner text.Handle) []vline.Handle {
	var out []vline.Handle
	for ; !h.IsNil() && s.Lines.Get(h).Owner == owner; h = s.Lines.Next(h) {
		s.Lines.Collapse(h)
		out = append(out, h)
	}
	return out
}

// Split makes the lines from at to the end of seg a segment of their own,
// removing up to strip leading spaces from each line. Lines of only spaces
// are kept as they are. at must be the head
// of a logical line owned by seg. When at is seg's first line the split
// happens in place and seg itself is returned.
func (s *Set) Split(seg *Segment, at vline.Handle, strip int) *Segment {
	l := s.Lines.Get(at)
	if l.Owner != seg.Text || l.Continuation {
		panic(fmt.Sprintf("segment: split at %s is not a line start of %s", at, seg.Text))
	}
	if at == seg.Start && strip == 0 {
		return seg
	}

	heads := s.heads(at, seg.Text)
	r := s.Store.Rope(seg.Text)
	base := l.StartByte

	spans := make([][2]int, len(heads))
	var tail rope.Rope
	if strip == 0 {
		_, tail = r.Split(base)
		for i, h := range heads {
			hl := s.Lines.Get(h)
			spans[i] = [2]int{hl.StartByte - base, hl.EndByte - base}
		}
	} else {
		var b rope.Builder
		for i, h := range heads {
			line := s.Lines.Text(s.Store, h)
			k := 0
			if !blank(line) {
				k = min(strip, leadingSpaces(line))
			}
			start := b.Len()
			b.WriteString(line[k:])
			spans[i] = [2]int{start, b.Len()}
		}
		tail = b.Build()
	}

	wrap := seg.BaseWrap - (seg.Indent + strip)
	if wrap < MinWrapWidth {
		wrap = seg.WrapAt
	}

	out := seg
	if at == seg.Start {
		s.Store.Set(seg.Text, tail)
	} else {
		left, _ := r.Split(base)
		s.Store.Set(seg.Text, left)
		out = &Segment{
			Text:     s.Store.AddRope(tail),
			BaseWrap: seg.BaseWrap,
			Shift:    seg.Shift,
			Start:    at,
			End:      seg.End,
		}
		seg.End = at
		s.segs[out.Text] = out
	}
	out.Indent = seg.Indent + strip
	out.WrapAt = wrap

	for i, h := range heads {
		s.Lines.Rebind(h, out.Text, spans[i][0], spans[i][1])
	}
	s.Lines.Rewrap(s.Store, at, out.WrapAt)
	return out
}

// Merge joins b, which must directly follow a, into a. Both texts are
// padded to the smaller of the two indents, so the document text is
// unchanged.
func (s *Set) Merge(a, b *Segment) {
	if a.End != b.Start {
		panic(fmt.Sprintf("segment: merge of non-adjacent segments %s and %s", a.Text, b.Text))
	}
	m := min(a.Indent, b.Indent)
	headsA := s.heads(a.Start, a.Text)
	headsB := s.heads(b.Start, b.Text)

	ra := s.pad(a, headsA, a.Indent-m, 0, a.Text)
	rb := s.pad(b, headsB, b.Indent-m, ra.Len(), a.Text)
	s.Store.Set(a.Text, ra.Concat(rb))
	s.Store.Remove(b.Text)
	delete(s.segs, b.Text)

	a.Indent = m
	a.WrapAt = wrapFor(a.BaseWrap, m)
	a.End = b.End
	s.Lines.Rewrap(s.Store, a.Start, a.WrapAt)
}

// pad returns seg's text with n spaces prepended to every non-blank line
// and rebinds heads to owner, shifted by offset.
func (s *Set) pad(seg *Segment, heads []vline.Handle, n, offset int, owner text.Handle) rope.Rope {
	if n == 0 {
		for _, h := range heads {
			l := s.Lines.Get(h)
			s.Lines.Rebind(h, owner, l.StartByte+offset, l.EndByte+offset)
		}
		return s.Rope(seg)
	}
	spaces := strings.Repeat(" ", n)
	var b rope.Builder
	for _, h := range heads {
		line := s.Lines.Text(s.Store, h)
		start := b.Len()
		if !blank(line) {
			b.WriteString(spaces)
		}
		b.WriteString(line)
		s.Lines.Rebind(h, owner, start+offset, b.Len()+offset)
	}
	return b.Build()
}

// Compact merges every pair of adjacent segments of equal Shift unless the
// second one starts at a record for which keep returns true. Segments moved
// by IndentBy or DedentBy stay apart from unshifted neighbours so they keep
// their indentation and wrap width. It returns the number of merges.
func (s *Set) Compact(keep func(vline.Handle) bool) int {
	n := 0
	for a := s.First(); a != nil; {
		b := s.After(a)
		if b == nil {
			break
		}
		if a.Shift != b.Shift || (keep != nil && keep(b.Start)) {
			a = b
			continue
		}
		s.Merge(a, b)
		n++
	}
	return n
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
