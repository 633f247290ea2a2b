package constvec_test

import (
	"slices"
	"testing"

	"github.com/teenjuna/constvec"
	"github.com/teenjuna/constvec/internal/testing/require"
)

func TestIntoIter(t *testing.T) {
	fill := func() *constvec.Vec[Item] {
		vec := constvec.New[Item](len(Data) + 1)
		for _, item := range Data {
			vec.Push(item)
		}
		return vec
	}

	t.Run("Forward", func(t *testing.T) {
		it := fill().IntoIter()
		require.Equal(t, it.Len(), len(Data))

		var items []Item
		for {
			item, ok := it.Next()
			if !ok {
				break
			}
			items = append(items, item)
			require.Equal(t, it.Len(), len(Data)-len(items))
		}
		require.Equal(t, items, Data)
	})

	t.Run("Backward", func(t *testing.T) {
		it := fill().IntoIter()

		var items []Item
		for {
			item, ok := it.NextBack()
			if !ok {
				break
			}
			items = append(items, item)
		}
		slices.Reverse(items)
		require.Equal(t, items, Data)
	})

	t.Run("Both ends", func(t *testing.T) {
		it := fill().IntoIter()

		var (
			front []Item
			back  []Item
		)
		for i := 0; ; i++ {
			var (
				item Item
				ok   bool
			)
			if i%2 == 0 {
				item, ok = it.Next()
				if ok {
					front = append(front, item)
				}
			} else {
				item, ok = it.NextBack()
				if ok {
					back = append(back, item)
				}
			}
			if !ok {
				break
			}
			require.Equal(t, it.Len(), len(Data)-len(front)-len(back))
		}

		slices.Reverse(back)
		require.Equal(t, len(front)+len(back), len(Data))
		require.Equal(t, append(front, back...), Data)

		_, ok := it.Next()
		require.Equal(t, ok, false)
		_, ok = it.NextBack()
		require.Equal(t, ok, false)
	})

	t.Run("Seq", func(t *testing.T) {
		it := fill().IntoIter()

		var items []Item
		for item := range it.Seq() {
			items = append(items, item)
			if len(items) == 10 {
				break
			}
		}
		require.Equal(t, items, Data[:10])
		require.Equal(t, it.Len(), len(Data)-10)

		require.Equal(t, slices.Collect(it.Seq()), Data[10:])
		require.Equal(t, it.Len(), 0)
	})

	t.Run("Empty", func(t *testing.T) {
		it := constvec.New[Item](0).IntoIter()
		require.Equal(t, it.Len(), 0)
		_, ok := it.Next()
		require.Equal(t, ok, false)
		it.Release()
	})

	t.Run("Moves the vec", func(t *testing.T) {
		vec := fill()
		_ = vec.IntoIter()
		require.PanicWithError(t, "vec has been moved", func() {
			_ = vec.Len()
		})
	})
}

func TestIterRelease(t *testing.T) {
	fill := func(log *[]int) *constvec.Iter[resource] {
		vec := constvec.New[resource](6)
		for i := range 5 {
			vec.Push(resource{id: i, log: log})
		}
		return vec.IntoIter()
	}

	t.Run("Partially consumed", func(t *testing.T) {
		var log []int
		it := fill(&log)

		first, _ := it.Next()
		last, _ := it.NextBack()
		require.Equal(t, first.id, 0)
		require.Equal(t, last.id, 4)

		it.Release()
		require.Equal(t, log, []int{1, 2, 3})
		require.Equal(t, it.Len(), 0)

		it.Release()
		require.Equal(t, log, []int{1, 2, 3})
	})

	t.Run("Fully consumed", func(t *testing.T) {
		var log []int
		it := fill(&log)
		for range it.Seq() {
		}

		it.Release()
		require.Equal(t, len(log), 0)
	})

	t.Run("Not consumed", func(t *testing.T) {
		var log []int
		it := fill(&log)

		it.Release()
		require.Equal(t, log, []int{0, 1, 2, 3, 4})
	})
}
