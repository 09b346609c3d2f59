package rope

import "unicode/utf8"

// ByteOffset is an absolute byte position in a rope.
type ByteOffset = int

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// totals of their subtrees.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the rune count.
	Chars int

	// Lines is the number of '\n' characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates every character is ASCII, so bytes == chars.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the span contains at least one '\n'.
	FlagHasNewlines
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}
	flags := s.Flags & other.Flags & FlagASCII
	flags |= (s.Flags | other.Flags) & FlagHasNewlines
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: flags,
	}
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if c == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}
	if sum.Flags&FlagASCII != 0 {
		sum.Chars = len(s)
	} else {
		sum.Chars = utf8.RuneCountInString(s)
	}
	return sum
}

// charToByteIn returns the byte offset of the n-th rune of s.
// n is clamped to the rune count of s.
func charToByteIn(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for n > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n--
	}
	return i
}
