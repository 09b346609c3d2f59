// Package arena provides a generation-checked handle table.
//
// An Arena stores values in reusable slots and hands out Keys that pair a
// slot index with the slot's generation. Removing a value bumps the slot
// generation, so a Key that outlived its value is detected instead of
// silently aliasing whatever was stored in the slot afterwards.
//
// Keys are plain values and stay valid across unrelated insertions and
// removals, which makes them suitable for doubly-linked structures that are
// split and merged frequently:
//
//	a := arena.New[string]()
//	k := a.Insert("hello")
//	v, ok := a.Get(k)     // "hello", true
//	a.Remove(k)
//	_, ok = a.Get(k)      // false: stale key
//
// Pointers returned by Ptr are only valid until the next Insert.
package arena
