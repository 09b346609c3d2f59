package segment

import (
	"strings"

	"github.com/dshills/blockwrap/internal/engine/rope"
	"github.com/dshills/blockwrap/internal/engine/text"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

// Layout constants.
const (
	// DefaultWrapWidth is the base wrap width of a new document.
	DefaultWrapWidth = 40

	// MinWrapWidth is the narrowest a segment may wrap.
	MinWrapWidth = 8

	// IndentUnit is the indentation step in columns.
	IndentUnit = 4
)

// Segment is a contiguous range of visual lines sharing one text entry.
type Segment struct {
	Text     text.Handle
	BaseWrap int
	WrapAt   int
	Indent   int

	// Shift is the net indentation added by IndentBy and DedentBy since the
	// segment was split off. Compact only merges segments of equal Shift.
	Shift int

	// Start is the first record; End is the first record after the
	// segment, nil for the last segment.
	Start vline.Handle
	End   vline.Handle
}

// wrapFor returns the wrap width for a segment at indent.
func wrapFor(base, indent int) int {
	return max(base-indent, MinWrapWidth)
}

// Set is the context bundle of the editing core: text, visual lines and
// the segments that partition them.
type Set struct {
	Store *text.Store
	Lines *vline.Index

	// Head is the first record of the document. It never changes.
	Head vline.Handle

	segs map[text.Handle]*Segment
}

// New builds a single-segment set over content. A terminator is appended
// if content does not end with one.
func New(content string, baseWrap int) *Set {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	baseWrap = max(baseWrap, MinWrapWidth)
	s := &Set{
		Store: text.NewStore(),
		Lines: vline.New(),
		segs:  make(map[text.Handle]*Segment),
	}
	owner := s.Store.Add(content)
	first, _ := s.Lines.Build(s.Store, owner, baseWrap)
	s.Head = first
	s.segs[owner] = &Segment{
		Text:     owner,
		BaseWrap: baseWrap,
		WrapAt:   baseWrap,
		Start:    first,
	}
	return s
}

// Of returns the segment owning record h.
func (s *Set) Of(h vline.Handle) *Segment {
	return s.segs[s.Lines.Get(h).Owner]
}

// Len returns the number of segments.
func (s *Set) Len() int { return len(s.segs) }

// First returns the first segment of the document.
func (s *Set) First() *Segment { return s.Of(s.Head) }

// After returns the segment following seg, or nil.
func (s *Set) After(seg *Segment) *Segment {
	if seg.End.IsNil() {
		return nil
	}
	return s.Of(seg.End)
}

// Before returns the segment preceding seg, or nil.
func (s *Set) Before(seg *Segment) *Segment {
	prev := s.Lines.Prev(seg.Start)
	if prev.IsNil() {
		return nil
	}
	return s.Of(prev)
}

// Segments returns every segment in document order.
func (s *Set) Segments() []*Segment {
	out := make([]*Segment, 0, len(s.segs))
	for seg := s.First(); seg != nil; seg = s.After(seg) {
		out = append(out, seg)
	}
	return out
}

// WrapOf reports the wrap width of the segment owning a text entry.
func (s *Set) WrapOf(owner text.Handle) int {
	return s.segs[owner].WrapAt
}

// Rope returns the text of seg.
func (s *Set) Rope(seg *Segment) rope.Rope {
	return s.Store.Rope(seg.Text)
}

// Check verifies the visual line invariants of the whole document and the
// segment bookkeeping.
func (s *Set) Check() error {
	if err := s.Lines.Check(s.Store, s.Head, s.WrapOf); err != nil {
		return err
	}
	n := 0
	for seg := s.First(); seg != nil; seg = s.After(seg) {
		if s.Lines.Get(seg.Start).Owner != seg.Text {
			return errSegment("segment start is owned by another entry")
		}
		if !seg.End.IsNil() && s.Lines.Get(s.Lines.Prev(seg.End)).Owner != seg.Text {
			return errSegment("segment end does not follow its last record")
		}
		n++
	}
	if n != len(s.segs) {
		return errSegment("unreachable segments")
	}
	return nil
}

// Text materialises the document with every segment's indentation.
// Blank lines, including lines of only spaces, are not padded.
func (s *Set) Text() string {
	var sb strings.Builder
	for seg := s.First(); seg != nil; seg = s.After(seg) {
		appendIndented(&sb, s.Rope(seg).String(), seg.Indent)
	}
	return sb.String()
}

// blank reports whether line holds nothing but spaces and a terminator.
func blank(line string) bool {
	return strings.TrimLeft(line, " ") == "\n"
}

func appendIndented(sb *strings.Builder, str string, indent int) {
	pad := strings.Repeat(" ", indent)
	for len(str) > 0 {
		i := strings.IndexByte(str, '\n') + 1
		if i == 0 {
			i = len(str)
		}
		if !blank(str[:i]) {
			sb.WriteString(pad)
		}
		sb.WriteString(str[:i])
		str = str[i:]
	}
}

// SetBaseWrap changes the base wrap width of every segment and rewraps
// the whole document. It reports whether anything changed.
func (s *Set) SetBaseWrap(base int) bool {
	base = max(base, MinWrapWidth)
	changed := false
	for seg := s.First(); seg != nil; seg = s.After(seg) {
		if seg.BaseWrap == base {
			continue
		}
		seg.BaseWrap = base
		seg.WrapAt = wrapFor(base, seg.Indent)
		s.Lines.Rewrap(s.Store, seg.Start, seg.WrapAt)
		changed = true
	}
	return changed
}
