package vline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/blockwrap/internal/engine/text"
)

// Check walks the chain from first and verifies linkage, coverage of each
// owner's text and the wrap rules. wrapAt reports the wrap width of an owner.
func (x *Index) Check(src Source, first Handle, wrapAt func(text.Handle) int) error {
	seen := make(map[text.Handle]bool)
	var prev Handle
	var owner text.Handle
	pos := 0
	for h := first; !h.IsNil(); h = x.line(h).Next {
		if !x.Contains(h) {
			return fmt.Errorf("%w: stale record %s", ErrInvariant, h)
		}
		l := x.line(h)
		if l.Prev != prev {
			return fmt.Errorf("%w: record %s has prev %s, want %s", ErrInvariant, h, l.Prev, prev)
		}
		if l.Owner != owner {
			if !owner.IsNil() && pos != src.Rope(owner).Len() {
				return fmt.Errorf("%w: owner %s covered to %d of %d", ErrInvariant, owner, pos, src.Rope(owner).Len())
			}
			if seen[l.Owner] {
				return fmt.Errorf("%w: owner %s is not contiguous", ErrInvariant, l.Owner)
			}
			if l.Continuation {
				return fmt.Errorf("%w: record %s continues across owners", ErrInvariant, h)
			}
			seen[l.Owner] = true
			owner = l.Owner
			pos = 0
		}
		if l.StartByte != pos {
			return fmt.Errorf("%w: record %s starts at %d, want %d", ErrInvariant, h, l.StartByte, pos)
		}
		if l.EndByte <= l.StartByte {
			return fmt.Errorf("%w: record %s is empty", ErrInvariant, h)
		}
		pos = l.EndByte

		s := x.Text(src, h)
		chars := utf8.RuneCountInString(s)
		width := wrapAt(owner)
		next := l.Next
		nextCont := x.sameOwner(next, owner) && x.line(next).Continuation
		if i := strings.IndexByte(s, '\n'); i >= 0 && i != len(s)-1 {
			return fmt.Errorf("%w: record %s has an embedded terminator", ErrInvariant, h)
		}
		if strings.HasSuffix(s, "\n") {
			if chars > width+1 {
				return fmt.Errorf("%w: record %s has %d chars, limit %d", ErrInvariant, h, chars, width+1)
			}
			if l.Continuation && s == "\n" {
				return fmt.Errorf("%w: continuation %s holds only a terminator", ErrInvariant, h)
			}
			if nextCont {
				return fmt.Errorf("%w: record %s follows a terminator but is a continuation", ErrInvariant, next)
			}
		} else {
			if chars != width {
				return fmt.Errorf("%w: fragment %s has %d chars, want %d", ErrInvariant, h, chars, width)
			}
			if !nextCont {
				return fmt.Errorf("%w: fragment %s is not followed by a continuation", ErrInvariant, h)
			}
		}
		prev = h
	}
	if !owner.IsNil() && pos != src.Rope(owner).Len() {
		return fmt.Errorf("%w: owner %s covered to %d of %d", ErrInvariant, owner, pos, src.Rope(owner).Len())
	}
	return nil
}
