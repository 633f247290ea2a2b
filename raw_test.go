package constvec_test

import (
	"testing"
	"unsafe"

	"github.com/teenjuna/constvec"
	"github.com/teenjuna/constvec/internal/testing/require"
)

func TestRawParts(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		vec := constvec.New[Item](len(Data) + 5)
		for _, item := range Data {
			vec.Push(item)
		}
		data := vec.Data()

		ptr, length, capacity := vec.IntoRawParts()
		require.Equal(t, ptr, data)
		require.Equal(t, length, len(Data))
		require.Equal(t, capacity, len(Data)+5)

		vec = constvec.FromRawParts(ptr, length, capacity)
		require.Equal(t, vec.Slice(), Data)
		require.Equal(t, vec.Cap(), len(Data)+5)
		require.Equal(t, vec.Data(), data)

		vec.Push(Item{ID: "extra"})
		require.Equal(t, vec.Len(), len(Data)+1)
	})

	t.Run("Zero capacity", func(t *testing.T) {
		vec := constvec.New[Item](0)
		ptr, length, capacity := vec.IntoRawParts()
		require.NotNil(t, ptr)
		require.Equal(t, length, 0)
		require.Equal(t, capacity, 0)

		vec = constvec.FromRawParts(ptr, length, capacity)
		require.Equal(t, vec.Cap(), 0)
		require.Equal(t, vec.Len(), 0)

		vec = constvec.FromRawParts[Item](nil, 0, 0)
		require.Equal(t, vec.Cap(), 0)
		require.NotNil(t, vec.Data())
	})

	t.Run("No cleanup", func(t *testing.T) {
		var log []int
		vec := constvec.New[resource](2)
		vec.Push(resource{id: 1, log: &log})

		ptr, length, capacity := vec.IntoRawParts()
		vec.Release()
		require.Equal(t, len(log), 0)

		require.PanicWithError(t, "vec has been moved", func() {
			vec.Push(resource{})
		})

		vec = constvec.FromRawParts(ptr, length, capacity)
		vec.Release()
		require.Equal(t, log, []int{1})
	})

	t.Run("Zero value", func(t *testing.T) {
		var vec constvec.Vec[int]
		require.NotNil(t, vec.Data())

		ptr, length, capacity := vec.IntoRawParts()
		require.NotNil(t, ptr)
		require.Equal(t, length, 0)
		require.Equal(t, capacity, 0)
	})

	t.Run("Stale spare slots", func(t *testing.T) {
		arr := [4]int{1, 2, 3, 4}
		vec := constvec.FromRawParts(&arr[0], 2, len(arr))
		require.Equal(t, vec.Slice(), []int{1, 2})
		require.Equal(t, arr, [4]int{1, 2, 0, 0})
	})

	t.Run("Foreign array", func(t *testing.T) {
		var arr [4]int
		arr[0], arr[1] = 1, 2

		vec := constvec.FromRawParts(&arr[0], 2, len(arr))
		vec.Push(3)
		require.Equal(t, vec.Slice(), []int{1, 2, 3})
		require.Equal(t, arr, [4]int{1, 2, 3, 0})
		require.Equal(t, unsafe.Pointer(vec.Data()), unsafe.Pointer(&arr))
	})

	t.Run("Invalid bounds", func(t *testing.T) {
		var arr [2]int
		require.PanicWithError(t, "length can't be < 0", func() {
			_ = constvec.FromRawParts(&arr[0], -1, 2)
		})
		require.PanicWithError(t, "capacity can't be < length", func() {
			_ = constvec.FromRawParts(&arr[0], 2, 1)
		})
	})
}

func TestSliceConversion(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		vec := constvec.New[Item](len(Data) * 2)
		for _, item := range Data {
			vec.Push(item)
		}
		data := vec.Data()

		s := vec.IntoSlice()
		require.Equal(t, s, Data)
		require.Equal(t, cap(s), len(Data)*2)
		require.Equal(t, unsafe.SliceData(s), data)

		vec = constvec.FromSlice(s)
		require.Equal(t, vec.Slice(), Data)
		require.Equal(t, vec.Cap(), len(Data)*2)
		require.Equal(t, vec.Data(), data)
	})

	t.Run("Adopts backing array", func(t *testing.T) {
		s := make([]int, 2, 5)
		s[0], s[1] = 1, 2

		vec := constvec.FromSlice(s)
		require.Equal(t, vec.Len(), 2)
		require.Equal(t, vec.Cap(), 5)

		vec.Push(3)
		require.Equal(t, s[:3], []int{1, 2, 3})
	})

	t.Run("Stale spare slots", func(t *testing.T) {
		s := []int{1, 2, 3, 4}[:1]
		full := s[:4]

		vec := constvec.FromSlice(s)
		require.Equal(t, vec.Slice(), []int{1})
		require.Equal(t, full, []int{1, 0, 0, 0})
	})

	t.Run("Nil slice", func(t *testing.T) {
		vec := constvec.FromSlice[int](nil)
		require.Equal(t, vec.Len(), 0)
		require.Equal(t, vec.Cap(), 0)
		require.PanicWithError(t, "vec is full", func() {
			vec.Push(1)
		})
	})

	t.Run("Moved", func(t *testing.T) {
		vec := constvec.New[int](1)
		_ = vec.IntoSlice()
		require.PanicWithError(t, "vec has been moved", func() {
			_ = vec.IntoSlice()
		})
		require.PanicWithError(t, "vec has been moved", func() {
			_, _, _ = vec.IntoRawParts()
		})
		require.PanicWithError(t, "vec has been moved", func() {
			_ = vec.IntoIter()
		})
	})
}
