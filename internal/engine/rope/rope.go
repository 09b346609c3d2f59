package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope. Operations return new Rope values; the
// receiver is never modified, so a Rope can be shared freely.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	leaves := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		leaf := make([]Chunk, min(i+MaxChunksPerLeaf, len(chunks))-i)
		copy(leaf, chunks[i:])
		leaves = append(leaves, newLeafNodeWithChunks(leaf))
	}
	return Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// Chars returns the number of characters (runes).
func (r Rope) Chars() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// LineCount returns the number of '\n'-separated lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics of the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end int) string {
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, max(start, 0), end)
	return sb.String()
}

// ByteToChar converts a byte offset to a character offset.
func (r Rope) ByteToChar(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset >= r.Len() {
		return r.Chars()
	}
	if r.root.summary.Flags&FlagASCII != 0 {
		return offset
	}
	return r.root.byteToChar(offset)
}

// CharToByte converts a character offset to a byte offset.
func (r Rope) CharToByte(char int) int {
	if r.root == nil || char <= 0 {
		return 0
	}
	if char >= r.Chars() {
		return r.Len()
	}
	if r.root.summary.Flags&FlagASCII != 0 {
		return char
	}
	return r.root.charToByte(char)
}

// Insert inserts text at a byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Split splits the rope at a byte offset into [0, offset) and [offset, Len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	if r.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Equals reports whether both ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}

// Height returns the tree height; useful for balance tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}
