// Package text implements the text store: a table of ropes addressed by
// generation-checked handles, one entry per segment.
//
// Offsets passed to Store are byte offsets into the entry's rope. Callers
// that work in characters convert through the rope's CharToByte.
package text
