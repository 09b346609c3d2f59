// Package rope provides an immutable rope used as the backing store for
// segment text.
//
// A rope is a B+ tree whose leaves hold bounded text chunks and whose internal
// nodes cache aggregated metrics (bytes, characters, newlines). Every edit
// returns a new Rope and leaves the receiver untouched, so copying a rope is
// free and a segment split can share structure with its parent until either
// side is edited.
//
// Offsets are byte offsets unless a method says otherwise; CharToByte and
// ByteToChar convert between byte and character (rune) offsets in
// O(log n) plus one chunk scan.
//
//	r := rope.FromString("hello world\n")
//	r = r.Insert(5, ",")           // "hello, world\n"
//	b := r.CharToByte(7)           // 7
//	left, right := r.Split(b)      // "hello, ", "world\n"
package rope
