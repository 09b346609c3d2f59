package rope

import (
	"strings"
	"unicode/utf8"
)

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope B+ tree. Leaves (height 0) hold chunks;
// internal nodes hold children and a copy of each child's summary.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.Summary())
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	n := &Node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.height == 0 }

// Len returns the byte length of the subtree.
func (n *Node) Len() int { return n.summary.Bytes }

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{summary: n.summary, chunks: chunks}
	}
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)
	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the bytes [start, end) of the subtree to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + c.Len()
			if cEnd > start && offset < end {
				lo := max(start-offset, 0)
				hi := min(end-offset, c.Len())
				sb.WriteString(c.String()[lo:hi])
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}
	for i, child := range n.children {
		cEnd := offset + n.childSummaries[i].Bytes
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, child.Len()))
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

// byteToChar counts the runes in the first offset bytes of the subtree.
func (n *Node) byteToChar(offset int) int {
	chars := 0
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			b := n.childSummaries[i].Bytes
			if offset < b {
				break
			}
			offset -= b
			chars += n.childSummaries[i].Chars
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if offset <= c.Len() {
			if c.summary.Flags&FlagASCII != 0 {
				return chars + offset
			}
			return chars + utf8.RuneCountInString(c.String()[:offset])
		}
		offset -= c.Len()
		chars += c.summary.Chars
	}
	return chars
}

// charToByte returns the byte offset of the char-th rune of the subtree.
func (n *Node) charToByte(char int) int {
	bytes := 0
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			c := n.childSummaries[i].Chars
			if char < c {
				break
			}
			char -= c
			bytes += n.childSummaries[i].Bytes
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if char <= c.summary.Chars {
			if c.summary.Flags&FlagASCII != 0 {
				return bytes + char
			}
			return bytes + charToByteIn(c.String(), char)
		}
		char -= c.summary.Chars
		bytes += c.Len()
	}
	return bytes
}

// split splits the subtree at a byte offset.
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		var left, right []Chunk
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+c.Len() <= offset:
				left = append(left, c)
			case pos >= offset:
				right = append(right, c)
			default:
				l, r := c.Split(offset - pos)
				left = append(left, l)
				right = append(right, r)
			}
			pos += c.Len()
		}
		return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
	}

	var left, right []*Node
	pos := 0
	for i, child := range n.children {
		size := n.childSummaries[i].Bytes
		switch {
		case pos+size <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - pos)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		pos += size
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren creates a balanced tree over nodes of equal height.
// Children of unequal height are lifted first.
func buildNodeFromChildren(children []*Node) *Node {
	switch len(children) {
	case 0:
		return newLeafNode()
	case 1:
		return children[0]
	}
	var height uint8
	for _, c := range children {
		height = max(height, c.height)
	}
	for i, c := range children {
		for c.height < height {
			c = newInternalNode([]*Node{c})
		}
		children[i] = c
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}
	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		parents = append(parents, newInternalNode(children[i:min(i+MaxChildren, len(children))]))
	}
	return buildNodeFromChildren(parents)
}

// concat joins two subtrees.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}
	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	if left.IsLeaf() {
		chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
		chunks = append(chunks, left.chunks...)
		for _, c := range right.chunks {
			last := len(chunks) - 1
			if last >= 0 && chunks[last].Len()+c.Len() <= MaxChunkSize {
				chunks[last] = NewChunk(chunks[last].String() + c.String())
				continue
			}
			chunks = append(chunks, c)
		}
		if len(chunks) <= MaxChunksPerLeaf {
			return newLeafNodeWithChunks(chunks)
		}
		return newInternalNode([]*Node{
			newLeafNodeWithChunks(chunks[:len(chunks)/2]),
			newLeafNodeWithChunks(chunks[len(chunks)/2:]),
		})
	}
	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}
