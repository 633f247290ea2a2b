package constvec

import (
	"iter"
	"slices"
)

// Vec is a fixed-capacity container that can be pushed into through any shared handle.
//
// The backing array is allocated once by [New] (or adopted by [FromSlice] and [FromRawParts]) and
// never grows. Pushing into a full Vec panics: callers are expected to know the capacity upfront.
//
// A Vec is not safe for concurrent use. The length is a plain counter that any *Vec holder can
// advance, so every holder must live on the same goroutine. Vec must not be copied after first
// use.
type Vec[Item any] struct {
	_ noCopy
	_ [0]func()

	data  []Item
	len   int
	moved bool
}

// New allocates a Vec that can hold exactly capacity items.
//
// Zero capacity allocates nothing.
func New[Item any](capacity int) *Vec[Item] {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	return &Vec[Item]{
		data: make([]Item, capacity),
	}
}

// Cap returns the number of items the Vec can hold.
func (v *Vec[Item]) Cap() int {
	v.ensure()
	return len(v.data)
}

// Len returns the number of live items.
func (v *Vec[Item]) Len() int {
	v.ensure()
	return v.len
}

// IsEmpty reports whether the Vec has no live items.
func (v *Vec[Item]) IsEmpty() bool {
	return v.Len() == 0
}

// IsFull reports whether the next push would panic.
func (v *Vec[Item]) IsFull() bool {
	return v.Len() == v.Cap()
}

// Remaining returns the number of pushes left before the Vec is full.
func (v *Vec[Item]) Remaining() int {
	return v.Cap() - v.Len()
}

// Push writes item into the first free slot.
//
// It panics if the Vec is full.
func (v *Vec[Item]) Push(item Item) {
	v.ensure()
	if v.len >= len(v.data) {
		panic("vec is full")
	}
	v.data[v.len] = item
	v.len++
}

// Pop removes the last live item and returns it. It returns false if the Vec is empty.
//
// The item is handed to the caller as is: it is not cleaned up.
func (v *Vec[Item]) Pop() (Item, bool) {
	v.ensure()
	var zero Item
	if v.len == 0 {
		return zero, false
	}
	v.len--
	item := v.data[v.len]
	v.data[v.len] = zero
	return item, true
}

// Append moves all items of other to the end of the Vec and truncates other to zero length.
//
// It panics, without touching either side, if the items don't fit or if other shares memory with
// the Vec, such as a slice obtained from [Vec.Slice].
func (v *Vec[Item]) Append(other *[]Item) {
	v.ensure()
	items := *other
	if overlaps(items, v.data) {
		panic("other aliases vec")
	}
	if len(items) > len(v.data)-v.len {
		panic("not enough capacity")
	}
	n := copy(v.data[v.len:], items)
	v.len += n
	clear(items)
	*other = items[:0]
}

// Clear removes all live items, cleaning them up in order. The capacity is retained.
//
// The length is reset before any cleanup runs: if a cleanup panics, the Vec is left empty and the
// items that were not cleaned yet are leaked.
func (v *Vec[Item]) Clear() {
	v.ensure()
	n := v.len
	v.len = 0
	cleanup(v.data[:n])
}

// Release cleans up all live items and drops the backing array. The Vec can't be used afterwards.
//
// Release is a no-op on a Vec that was already released or moved.
func (v *Vec[Item]) Release() {
	if v.moved {
		return
	}
	data, n := v.data, v.len
	v.data, v.len, v.moved = nil, 0, true
	cleanup(data[:n])
}

// Slice returns the live items. Its capacity is clipped to its length, so appending to it never
// writes into the Vec.
//
// The returned slice aliases the Vec: assigning to its elements modifies the Vec.
func (v *Vec[Item]) Slice() []Item {
	v.ensure()
	return v.data[:v.len:v.len]
}

// At returns the live item at index i. It panics if i is out of range.
func (v *Vec[Item]) At(i int) Item {
	return v.Slice()[i]
}

// Values returns an iterator over the live items.
func (v *Vec[Item]) Values() iter.Seq[Item] {
	return slices.Values(v.Slice())
}

// All returns an iterator over the indexes and live items.
func (v *Vec[Item]) All() iter.Seq2[int, Item] {
	return slices.All(v.Slice())
}

// Backward returns an iterator over the indexes and live items, last to first.
func (v *Vec[Item]) Backward() iter.Seq2[int, Item] {
	return slices.Backward(v.Slice())
}

func (v *Vec[Item]) ensure() {
	if v.moved {
		panic("vec has been moved")
	}
}

// noCopy may be embedded into structs which must not be copied after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
