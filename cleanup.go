package constvec

// Cleanable is an optional interface for items that hold resources.
//
// A Vec or Iter calls Cleanup exactly once for every item it destroys: on [Vec.Clear],
// [Vec.Release] and [Iter.Release]. Items that leave the container by other means ([Vec.Pop],
// [Iter.Next], [Vec.IntoSlice], ...) belong to the caller and are not cleaned up.
type Cleanable interface {
	Cleanup()
}

// Cloner is an optional interface for items that define how they are duplicated by [Vec.Clone].
type Cloner[Item any] interface {
	Clone() Item
}

// cleanup destroys items in order. Every slot is zeroed right after its item is cleaned up.
func cleanup[Item any](items []Item) {
	var zero Item
	for i := range items {
		if c, ok := any(items[i]).(Cleanable); ok {
			c.Cleanup()
		}
		items[i] = zero
	}
}

func cloneItem[Item any](item Item) Item {
	if c, ok := any(item).(Cloner[Item]); ok {
		return c.Clone()
	}
	return item
}
