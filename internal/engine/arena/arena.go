package arena

import "fmt"

// Key identifies a value stored in an Arena[T].
// The zero Key is the nil key and never refers to a value.
type Key[T any] struct {
	index uint32
	gen   uint32
}

// IsNil reports whether k is the nil key.
func (k Key[T]) IsNil() bool {
	return k.gen == 0
}

// String formats the key for debugging output.
func (k Key[T]) String() string {
	if k.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%dv%d", k.index, k.gen)
}

type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// Arena is a slot table addressed by generation-checked keys.
// It is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns its key.
func (a *Arena[T]) Insert(v T) Key[T] {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.occupied = true
		return Key[T]{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, occupied: true})
	return Key[T]{index: uint32(len(a.slots) - 1), gen: 1}
}

// Contains reports whether k refers to a live value.
func (a *Arena[T]) Contains(k Key[T]) bool {
	if k.IsNil() || int(k.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[k.index]
	return s.occupied && s.gen == k.gen
}

// Get returns a copy of the value for k.
func (a *Arena[T]) Get(k Key[T]) (T, bool) {
	if !a.Contains(k) {
		var zero T
		return zero, false
	}
	return a.slots[k.index].value, true
}

// Ptr returns a pointer to the value for k, or nil if k is stale.
// The pointer is invalidated by the next Insert.
func (a *Arena[T]) Ptr(k Key[T]) *T {
	if !a.Contains(k) {
		return nil
	}
	return &a.slots[k.index].value
}

// MustPtr is like Ptr but panics on a stale or nil key.
// Dereferencing a removed record is a programming error.
func (a *Arena[T]) MustPtr(k Key[T]) *T {
	p := a.Ptr(k)
	if p == nil {
		panic(fmt.Sprintf("arena: stale key %s", k))
	}
	return p
}

// Remove deletes the value for k and returns it.
func (a *Arena[T]) Remove(k Key[T]) (T, bool) {
	var zero T
	if !a.Contains(k) {
		return zero, false
	}
	s := &a.slots[k.index]
	v := s.value
	s.value = zero
	s.occupied = false
	s.gen++
	if s.gen == 0 {
		// Generation wrapped; skip the value reserved for the nil key.
		s.gen = 1
	}
	a.free = append(a.free, k.index)
	a.count--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}
