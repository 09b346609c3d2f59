package text

import (
	"fmt"

	"github.com/dshills/blockwrap/internal/engine/arena"
	"github.com/dshills/blockwrap/internal/engine/rope"
)

// Handle addresses one entry of a Store.
type Handle = arena.Key[rope.Rope]

// Store maps handles to editable ropes. It exclusively owns character data.
type Store struct {
	entries *arena.Arena[rope.Rope]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: arena.New[rope.Rope]()}
}

// Add stores s as a new entry.
func (s *Store) Add(str string) Handle {
	return s.entries.Insert(rope.FromString(str))
}

// AddRope stores r as a new entry. The rope is shared, not copied.
func (s *Store) AddRope(r rope.Rope) Handle {
	return s.entries.Insert(r)
}

// Rope returns the current rope for h. It panics if h is stale.
func (s *Store) Rope(h Handle) rope.Rope {
	return *s.entries.MustPtr(h)
}

// Set replaces the rope for h.
func (s *Store) Set(h Handle, r rope.Rope) {
	*s.entries.MustPtr(h) = r
}

// Contains reports whether h refers to a live entry.
func (s *Store) Contains(h Handle) bool {
	return s.entries.Contains(h)
}

// Remove deletes the entry for h.
func (s *Store) Remove(h Handle) {
	if _, ok := s.entries.Remove(h); !ok {
		panic(fmt.Sprintf("text: remove of stale handle %s", h))
	}
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Slice returns bytes [start, end) of the entry.
func (s *Store) Slice(h Handle, start, end int) string {
	return s.Rope(h).Slice(start, end)
}

// Insert inserts str at a byte offset and returns the number of bytes added.
func (s *Store) Insert(h Handle, offset int, str string) int {
	p := s.entries.MustPtr(h)
	*p = p.Insert(offset, str)
	return len(str)
}

// InsertChar inserts one rune at a byte offset and returns its encoded length.
func (s *Store) InsertChar(h Handle, offset int, c rune) int {
	return s.Insert(h, offset, string(c))
}

// Delete removes bytes [start, end) and returns the number removed.
func (s *Store) Delete(h Handle, start, end int) int {
	p := s.entries.MustPtr(h)
	before := p.Len()
	*p = p.Delete(start, end)
	return before - p.Len()
}

// DeleteChar removes the character starting at a byte offset and returns
// its encoded length, or 0 at the end of the entry.
func (s *Store) DeleteChar(h Handle, offset int) int {
	r := s.Rope(h)
	if offset >= r.Len() {
		return 0
	}
	c := r.ByteToChar(offset)
	return s.Delete(h, offset, r.CharToByte(c+1))
}
