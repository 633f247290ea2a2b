package constvec

import "iter"

// Iter is a consuming iterator created by [Vec.IntoIter]. It owns the Vec's backing array and
// moves items out of it from either end.
//
// Items that were not yielded are cleaned up by [Iter.Release]. Like Vec, Iter is not safe for
// concurrent use.
type Iter[Item any] struct {
	_ noCopy

	data  []Item
	start int
	end   int
}

// IntoIter transfers the live items into a consuming iterator. The Vec can't be used afterwards.
func (v *Vec[Item]) IntoIter() *Iter[Item] {
	v.ensure()
	it := Iter[Item]{
		data: v.data,
		end:  v.len,
	}
	v.move()
	return &it
}

// Next moves the first remaining item out of the iterator. It returns false when the iterator is
// exhausted.
func (it *Iter[Item]) Next() (Item, bool) {
	var zero Item
	if it.start == it.end {
		return zero, false
	}
	item := it.data[it.start]
	it.data[it.start] = zero
	it.start++
	return item, true
}

// NextBack moves the last remaining item out of the iterator. It returns false when the iterator
// is exhausted.
func (it *Iter[Item]) NextBack() (Item, bool) {
	var zero Item
	if it.start == it.end {
		return zero, false
	}
	it.end--
	item := it.data[it.end]
	it.data[it.end] = zero
	return item, true
}

// Len returns the exact number of items that were not yielded yet.
func (it *Iter[Item]) Len() int {
	return it.end - it.start
}

// Seq returns a single-use sequence that moves the remaining items out front to back.
//
// Stopping the loop early leaves the rest of the items in the iterator.
func (it *Iter[Item]) Seq() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Release cleans up the items that were not yielded and drops the backing array.
//
// Release is idempotent; an exhausted iterator releases without cleaning anything up.
func (it *Iter[Item]) Release() {
	rest := it.data[it.start:it.end]
	it.data, it.start, it.end = nil, 0, 0
	cleanup(rest)
}
