package constvec

import "unsafe"

// FromRawParts creates a Vec from a pointer, a length and a capacity. Slots past length are
// zeroed.
//
// This is unsafe. ptr must point to the first element of an array of at least capacity items, the
// first length items must be live, and nothing else may use the array afterwards. Typically ptr,
// length and capacity come from [Vec.IntoRawParts]. Only the bounds are checked.
func FromRawParts[Item any](ptr *Item, length, capacity int) *Vec[Item] {
	if length < 0 {
		panic("length can't be < 0")
	}
	if capacity < length {
		panic("capacity can't be < length")
	}
	data := unsafe.Slice(ptr, capacity)
	if data == nil {
		data = make([]Item, 0)
	}
	clear(data[length:])
	return &Vec[Item]{
		data: data,
		len:  length,
	}
}

// IntoRawParts decomposes the Vec into a pointer to its backing array, its length and its
// capacity. The caller becomes responsible for the items: no cleanup runs, and the Vec can't be
// used afterwards.
//
// For a zero-capacity Vec the pointer is non-nil but must not be dereferenced.
func (v *Vec[Item]) IntoRawParts() (ptr *Item, length, capacity int) {
	ptr, length, capacity = v.Data(), v.len, len(v.data)
	v.move()
	return ptr, length, capacity
}

// Data returns a pointer to the first slot of the backing array.
//
// Only the first [Vec.Len] slots hold live items.
func (v *Vec[Item]) Data() *Item {
	v.ensure()
	if v.data == nil {
		// Zero Vec.
		return unsafe.SliceData(make([]Item, 0))
	}
	return unsafe.SliceData(v.data)
}

// FromSlice creates a Vec that takes over the backing array of s without copying. The Vec's
// capacity is cap(s) and its length is len(s).
//
// The spare slots s[len(s):cap(s)] are zeroed. The caller must not use s afterwards.
func FromSlice[Item any](s []Item) *Vec[Item] {
	if s == nil {
		s = make([]Item, 0)
	}
	data := s[:cap(s)]
	clear(data[len(s):])
	return &Vec[Item]{
		data: data,
		len:  len(s),
	}
}

// IntoSlice hands the backing array over as a regular slice holding the live items, with the
// Vec's capacity. No items are copied. The Vec can't be used afterwards.
func (v *Vec[Item]) IntoSlice() []Item {
	v.ensure()
	s := v.data[:v.len]
	v.move()
	return s
}

func (v *Vec[Item]) move() {
	v.data, v.len, v.moved = nil, 0, true
}

// overlaps reports whether a and b share at least one slot of memory.
func overlaps[Item any](a, b []Item) bool {
	var zero Item
	size := unsafe.Sizeof(zero)
	if len(a) == 0 || len(b) == 0 || size == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(len(b))*size
	return aStart < bEnd && bStart < aEnd
}
