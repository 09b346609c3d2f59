package rope

import "strings"

type chunkIterFrame struct {
	node  *Node
	index int
}

// ChunkIterator iterates over the chunks of a rope in order.
type ChunkIterator struct {
	stack  []chunkIterFrame
	chunk  Chunk
	offset int
	next   int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]chunkIterFrame, 0, 8)}
	if r.root != nil {
		it.stack = append(it.stack, chunkIterFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.index < len(top.node.chunks) {
				c := top.node.chunks[top.index]
				top.index++
				if c.IsEmpty() {
					continue
				}
				it.chunk = c
				it.offset = it.next
				it.next += c.Len()
				return true
			}
		} else if top.index < len(top.node.children) {
			child := top.node.children[top.index]
			top.index++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk { return it.chunk }

// Offset returns the byte offset where the current chunk starts.
func (it *ChunkIterator) Offset() int { return it.offset }

// LineIterator iterates over the lines of a rope. Each line includes its
// trailing '\n'; text after the last '\n' forms a final unterminated line,
// which is skipped when empty.
type LineIterator struct {
	chunks  *ChunkIterator
	pending string
	start   int
	end     int
	pos     int
	done    bool
}

// Lines returns an iterator over the lines of the rope.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{chunks: r.Chunks()}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}
	it.start = it.pos
	for {
		if i := strings.IndexByte(it.pending, '\n'); i >= 0 {
			it.pending = it.pending[i+1:]
			it.pos += i + 1
			it.end = it.pos
			return true
		}
		it.pos += len(it.pending)
		it.pending = ""
		if !it.chunks.Next() {
			it.done = true
			it.end = it.pos
			return it.end > it.start
		}
		it.pending = it.chunks.Chunk().String()
	}
}

// Start returns the byte offset of the current line.
func (it *LineIterator) Start() int { return it.start }

// End returns the byte offset just past the current line's terminator.
func (it *LineIterator) End() int { return it.end }
