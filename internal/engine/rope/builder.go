package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Builder accumulates text and builds a rope in one pass.
// The zero value is ready to use.
type Builder struct {
	chunks []Chunk
	buffer strings.Builder
	total  int
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.total += len(s)
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flushComplete()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return b.total }

func (b *Builder) flush() {
	if b.buffer.Len() == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(b.buffer.String())...)
	b.buffer.Reset()
}

// flushComplete flushes the buffer up to its last rune boundary and keeps
// any trailing partial UTF-8 sequence for the next write.
func (b *Builder) flushComplete() {
	s := b.buffer.String()
	cut := len(s)
	i := len(s) - 1
	for i > 0 && i > len(s)-utf8.UTFMax && !isUTF8Start(s[i]) {
		i--
	}
	if i >= 0 && !utf8.FullRuneInString(s[i:]) {
		cut = i
	}
	if cut == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(s[:cut])...)
	b.buffer.Reset()
	b.buffer.WriteString(s[cut:])
}

// Build creates the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	r := buildFromChunks(b.chunks)
	b.chunks = nil
	b.total = 0
	return r
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var n int64
	for {
		m, err := r.Read(buf)
		if m > 0 {
			b.WriteString(string(buf[:m]))
			n += int64(m)
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}
