package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable piece of text stored in a leaf.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary { return c.summary }

// Len returns the byte length of the chunk.
func (c Chunk) Len() int { return len(c.data) }

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool { return len(c.data) == 0 }

// Split splits a chunk at a byte offset that must fall on a rune boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks cuts s into chunks of about TargetChunkSize bytes without
// splitting a UTF-8 sequence.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := findUTF8Boundary(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	return append(chunks, NewChunk(s))
}

// findUTF8Boundary finds the first rune boundary at or after target,
// falling back to the closest one before it.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	pos := target
	for pos < len(s) && !isUTF8Start(s[pos]) {
		pos++
	}
	if pos > target+4 || pos >= len(s) {
		pos = target
		for pos > 0 && !isUTF8Start(s[pos]) {
			pos--
		}
	}
	return pos
}

// isUTF8Start reports whether b starts a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
