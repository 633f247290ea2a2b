// This package contains the main [Codec] interface and several implementations inside subpackages.
package codec

import (
	"errors"
	"iter"

	"github.com/teenjuna/constvec"
)

var (
	// ErrCapacityExceeded is returned by [DecodeInto] when the data holds more items than the vec
	// can take.
	ErrCapacityExceeded = errors.New("decoded items exceed vec capacity")
)

// Codec encodes and decodes vec items.
//
// Implementations are not considered thread-safe and each instance is used by a single goroutine.
type Codec[Item any] interface {
	// Encode serializes a sequence of items into a byte slice.
	Encode(items iter.Seq[Item]) ([]byte, error)
	// Decode deserializes a byte slice into items, pushing each to the provided function.
	//
	// Decoding stops without an error as soon as push returns false; the remaining data is left
	// unread.
	Decode(data []byte, push func(Item) bool) error
	// Derive returns a new Codec instance with the same settings.
	//
	// The returned codec maintains its own internal state independent of the original.
	Derive() Codec[Item]
}

// EncodeVec serializes the live items of vec.
func EncodeVec[Item any](c Codec[Item], vec *constvec.Vec[Item]) ([]byte, error) {
	return c.Encode(vec.Values())
}

// DecodeInto deserializes data and pushes the items into vec.
//
// Unlike [constvec.Vec.Push], overflowing the vec is reported as [ErrCapacityExceeded] instead of
// a panic, because data usually comes from outside. Decoding stops at the first item that doesn't
// fit; items decoded before it stay in vec.
func DecodeInto[Item any](c Codec[Item], data []byte, vec *constvec.Vec[Item]) error {
	var overflow bool
	err := c.Decode(data, func(item Item) bool {
		if vec.IsFull() {
			overflow = true
			return false
		}
		vec.Push(item)
		return true
	})
	if err != nil {
		return err
	}
	if overflow {
		return ErrCapacityExceeded
	}
	return nil
}
