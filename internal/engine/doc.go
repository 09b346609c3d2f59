// Package engine provides the editing core of blockwrap.
//
// The Editor is the facade over a document that is partitioned into
// independently wrapped and independently indented segments. It owns the
// segment set and its windows, and turns commands into operations on the
// sub-packages:
//
//   - arena: generation-checked handle tables
//   - rope: B+ tree rope with byte, char and line metrics
//   - text: the text store, one rope per segment
//   - vline: the incrementally wrapped visual line index
//   - segment: segments, split/merge, indentation and block discovery
//   - window: scroll anchor, screen cursor and the derived position
//
// # Usage
//
//	e := engine.New("def f():\n    return 1\n", engine.WithWrapWidth(20))
//	e.MoveDown()
//	e.Indent()
//	for it := e.DisplayLines(); it.Next(); {
//		line := it.Line()
//		fmt.Printf("%*s%s\n", line.Indent, "", strings.TrimSuffix(line.Text, "\n"))
//	}
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Hosts apply commands from a
// single goroutine; every command completes before the next one starts.
//
// # Failure model
//
// Boundary conditions, such as moving past the document edge or deleting
// the final terminator, are reported as a false "changed" result.
// Violations of the visual line invariants panic.
package engine
