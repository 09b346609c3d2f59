package vline

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/blockwrap/internal/engine/arena"
	"github.com/dshills/blockwrap/internal/engine/rope"
	"github.com/dshills/blockwrap/internal/engine/text"
)

// Handle addresses a record in an Index.
type Handle = arena.Key[Line]

// Line is one visual line: a byte range of its owner's text.
type Line struct {
	Prev, Next Handle
	Owner      text.Handle
	StartByte  int
	EndByte    int

	// Continuation is set when the record was produced by width overflow
	// rather than by a line terminator.
	Continuation bool
}

// Source resolves an owner handle to its text.
type Source interface {
	Rope(h text.Handle) rope.Rope
}

// MergeFunc observes a record being removed because it was merged into
// another record.
type MergeFunc func(removed, into Handle)

// Index stores visual line records. It is not safe for concurrent use.
type Index struct {
	lines   *arena.Arena[Line]
	onMerge []MergeFunc
}

// New creates an empty index.
func New() *Index {
	return &Index{lines: arena.New[Line]()}
}

// OnMerge registers fn to be called whenever a record is merged away.
func (x *Index) OnMerge(fn MergeFunc) {
	x.onMerge = append(x.onMerge, fn)
}

// Len returns the number of live records.
func (x *Index) Len() int { return x.lines.Len() }

// Contains reports whether h is a live record.
func (x *Index) Contains(h Handle) bool { return x.lines.Contains(h) }

// Get returns a copy of the record. It panics on a stale handle.
func (x *Index) Get(h Handle) Line { return *x.lines.MustPtr(h) }

// Next returns the successor of h, or the nil handle.
func (x *Index) Next(h Handle) Handle { return x.line(h).Next }

// Prev returns the predecessor of h, or the nil handle.
func (x *Index) Prev(h Handle) Handle { return x.line(h).Prev }

func (x *Index) line(h Handle) *Line { return x.lines.MustPtr(h) }

// Text returns the raw text of the record, including any terminator.
func (x *Index) Text(src Source, h Handle) string {
	l := x.line(h)
	return src.Rope(l.Owner).Slice(l.StartByte, l.EndByte)
}

// Chars returns the character count of the record, including any terminator.
func (x *Index) Chars(src Source, h Handle) int {
	return utf8.RuneCountInString(x.Text(src, h))
}

// Build indexes the whole text of owner and returns the first and last
// records of a new, unlinked chain. The text must end with '\n'.
func (x *Index) Build(src Source, owner text.Handle, wrapAt int) (first, last Handle) {
	r := src.Rope(owner)
	if r.Len() == 0 || r.Slice(r.Len()-1, r.Len()) != "\n" {
		panic(fmt.Sprintf("vline: text %s does not end with a terminator", owner))
	}
	var prev Handle
	it := r.Lines()
	for it.Next() {
		h := x.lines.Insert(Line{Prev: prev, Owner: owner, StartByte: it.Start(), EndByte: it.End()})
		if prev.IsNil() {
			first = h
		} else {
			x.line(prev).Next = h
		}
		prev = h
	}
	for h := first; !h.IsNil(); {
		last = x.Wrap(src, h, wrapAt)
		h = x.line(last).Next
	}
	return first, last
}

type scanResult int

const (
	scanTerminated scanResult = iota // ends with '\n' and fits
	scanLineBreak                    // embedded '\n' before the end
	scanOverflow                     // more than wrapAt characters before any '\n'
	scanFragment                     // exactly wrapAt characters, no terminator
	scanShort                        // fewer than wrapAt characters, no terminator
)

// scan classifies a record. For scanLineBreak and scanOverflow it also
// returns the absolute byte offset to split at. Only the first wrapAt+1
// characters are examined.
func scan(r rope.Rope, l *Line, wrapAt int) (scanResult, int) {
	limit := min(l.EndByte, l.StartByte+(wrapAt+1)*utf8.UTFMax)
	s := r.Slice(l.StartByte, limit)
	n := 0
	for pos := 0; pos < len(s); n++ {
		abs := l.StartByte + pos
		if s[pos] == '\n' {
			if abs+1 < l.EndByte {
				return scanLineBreak, abs + 1
			}
			return scanTerminated, 0
		}
		if n == wrapAt {
			return scanOverflow, abs
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	if n == wrapAt {
		return scanFragment, 0
	}
	return scanShort, 0
}

// Wrap repairs the chain starting at h until a record that ends with a
// terminator and fits in wrapAt+1 characters. It returns that record.
// It panics if a record without a terminator has no successor of the same
// owner: every owner's text must end with '\n'.
func (x *Index) Wrap(src Source, h Handle, wrapAt int) Handle {
	owner := x.line(h).Owner
	r := src.Rope(owner)
	cur := h
	for {
		l := x.line(cur)
		res, at := scan(r, l, wrapAt)
		switch res {
		case scanTerminated:
			if next := l.Next; x.sameOwner(next, owner) {
				x.line(next).Continuation = false
			}
			if prev, ok := x.rejoin(cur); ok {
				return prev
			}
			return cur
		case scanLineBreak:
			tail := x.split(cur, at, false)
			x.rejoin(cur)
			cur = tail
		case scanOverflow:
			cur = x.split(cur, at, true)
		case scanFragment:
			next := l.Next
			if !x.sameOwner(next, owner) {
				panic(fmt.Sprintf("vline: record %s without terminator has no successor", cur))
			}
			x.line(next).Continuation = true
			cur = next
		case scanShort:
			x.mergeNext(cur)
		}
	}
}

// rejoin merges a continuation holding only a terminator back into the
// full fragment before it.
func (x *Index) rejoin(h Handle) (Handle, bool) {
	l := x.line(h)
	if !l.Continuation || l.EndByte-l.StartByte != 1 {
		return h, false
	}
	prev := l.Prev
	x.mergeNext(prev)
	return prev, true
}

func (x *Index) sameOwner(h Handle, owner text.Handle) bool {
	return !h.IsNil() && x.line(h).Owner == owner
}

// split cuts h at an absolute byte offset and returns the new tail record.
func (x *Index) split(h Handle, at int, continuation bool) Handle {
	l := x.line(h)
	tail := Line{
		Prev:         h,
		Next:         l.Next,
		Owner:        l.Owner,
		StartByte:    at,
		EndByte:      l.EndByte,
		Continuation: continuation,
	}
	t := x.lines.Insert(tail)
	l = x.line(h)
	l.EndByte = at
	l.Next = t
	if !tail.Next.IsNil() {
		x.line(tail.Next).Prev = t
	}
	return t
}

// mergeNext coalesces h with its successor, which must share its owner.
func (x *Index) mergeNext(h Handle) {
	l := x.line(h)
	next := l.Next
	if next.IsNil() {
		panic(fmt.Sprintf("vline: record %s without terminator has no successor", h))
	}
	n := x.line(next)
	if n.Owner != l.Owner {
		panic(fmt.Sprintf("vline: record %s would span owners %s and %s", h, l.Owner, n.Owner))
	}
	l.EndByte = n.EndByte
	l.Next = n.Next
	if !n.Next.IsNil() {
		x.line(n.Next).Prev = h
	}
	x.lines.Remove(next)
	for _, fn := range x.onMerge {
		fn(next, h)
	}
}

// Insert records that n bytes were inserted inside h, shifts every later
// record of the same owner and rewraps from h. It returns the last record
// touched by the repair.
func (x *Index) Insert(src Source, h Handle, n, wrapAt int) Handle {
	x.shift(h, n)
	return x.Wrap(src, h, wrapAt)
}

// Remove records that n bytes were removed inside h, shifts every later
// record of the same owner and rewraps from h.
func (x *Index) Remove(src Source, h Handle, n, wrapAt int) Handle {
	x.shift(h, -n)
	return x.Wrap(src, h, wrapAt)
}

func (x *Index) shift(h Handle, n int) {
	l := x.line(h)
	l.EndByte += n
	owner := l.Owner
	for next := l.Next; x.sameOwner(next, owner); {
		nl := x.line(next)
		nl.StartByte += n
		nl.EndByte += n
		next = nl.Next
	}
}

// Collapse merges every continuation of the logical line starting at head
// back into head.
func (x *Index) Collapse(head Handle) {
	for {
		next := x.line(head).Next
		if next.IsNil() || !x.line(next).Continuation {
			return
		}
		x.mergeNext(head)
	}
}

// Rewrap collapses and rewraps every logical line of first's owner from
// first onward. first must be the head of a logical line. It returns the
// owner's last record.
func (x *Index) Rewrap(src Source, first Handle, wrapAt int) Handle {
	owner := x.line(first).Owner
	var last Handle
	for h := first; x.sameOwner(h, owner); {
		x.Collapse(h)
		last = x.Wrap(src, h, wrapAt)
		h = x.line(last).Next
	}
	return last
}

// Rebind moves h to a new owner and byte range.
func (x *Index) Rebind(h Handle, owner text.Handle, start, end int) {
	l := x.line(h)
	l.Owner = owner
	l.StartByte = start
	l.EndByte = end
}

// Link makes b the successor of a. Either may be nil.
func (x *Index) Link(a, b Handle) {
	if !a.IsNil() {
		x.line(a).Next = b
	}
	if !b.IsNil() {
		x.line(b).Prev = a
	}
}

// LineStart returns the head record of h's logical line.
func (x *Index) LineStart(h Handle) Handle {
	for x.line(h).Continuation {
		h = x.line(h).Prev
	}
	return h
}

// LineEnd returns the terminated record of h's logical line.
func (x *Index) LineEnd(h Handle) Handle {
	for {
		next := x.line(h).Next
		if next.IsNil() || !x.line(next).Continuation {
			return h
		}
		h = next
	}
}

// LineText returns the full text of the logical line containing h.
func (x *Index) LineText(src Source, h Handle) string {
	start := x.line(x.LineStart(h))
	end := x.line(x.LineEnd(h))
	return src.Rope(start.Owner).Slice(start.StartByte, end.EndByte)
}

// Distance returns the number of records from from to to walking forward,
// or false if to is not reached before the end of the chain.
func (x *Index) Distance(from, to Handle) (int, bool) {
	n := 0
	for h := from; !h.IsNil(); h = x.line(h).Next {
		if h == to {
			return n, true
		}
		n++
	}
	return 0, false
}

// Forward walks up to n records forward from h without reaching end, which
// may be nil. It returns the record reached and the steps taken.
func (x *Index) Forward(h Handle, n int, end Handle) (Handle, int) {
	taken := 0
	for taken < n {
		next := x.line(h).Next
		if next.IsNil() || next == end {
			break
		}
		h = next
		taken++
	}
	return h, taken
}

// Backward walks up to n records backward from h without passing origin.
func (x *Index) Backward(h Handle, n int, origin Handle) (Handle, int) {
	taken := 0
	for taken < n && h != origin {
		prev := x.line(h).Prev
		if prev.IsNil() {
			break
		}
		h = prev
		taken++
	}
	return h, taken
}

// Delete unlinks and removes a record.
func (x *Index) Delete(h Handle) {
	l := x.line(h)
	x.Link(l.Prev, l.Next)
	x.lines.Remove(h)
}
