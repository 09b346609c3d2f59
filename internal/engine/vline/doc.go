// Package vline maintains the visual line index: a doubly-linked list of
// display rows over segment text, stored in a generational arena.
//
// Each record covers a byte range of one owner's text. A logical line is a
// head record followed by zero or more continuation records produced by
// wrapping; the last record of a logical line ends with '\n'. Records are
// repaired incrementally: after an edit only the chain from the edited
// record to the end of its logical line is rewrapped.
//
// Wrapping is by character count. A record holds at most wrapAt characters
// plus its terminator; the split point is exactly wrapAt characters from the
// record start.
package vline
